/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"reflect"
	"strings"
	"time"

	"github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/registry"
)

// Lookup selects how a predicate compares a field against its value.
type Lookup int

const (
	// LookupExact matches by field equality.
	LookupExact Lookup = iota
	// LookupPK matches a relation field by the related object's primary key.
	LookupPK
	// LookupGreaterThan matches fields ordered strictly after the value.
	LookupGreaterThan
	// LookupLessThan matches fields ordered strictly before the value.
	LookupLessThan
)

// Predicate is one typed filter condition over a model field. Predicates are
// values; composing them never mutates a query or the store.
type Predicate struct {
	Field  string
	Lookup Lookup
	Value  any
}

// Exact builds an equality predicate on the named field.
func Exact(field string, value any) Predicate {
	return Predicate{Field: field, Lookup: LookupExact, Value: value}
}

// PK builds a predicate matching a relation field by primary key. The field
// is the lower-cased name of the related model's field on this model; pk is
// the related instance's identity.
func PK(field, pk string) Predicate {
	return Predicate{Field: field, Lookup: LookupPK, Value: pk}
}

// After builds a predicate matching fields ordered strictly after value.
func After(field string, value any) Predicate {
	return Predicate{Field: field, Lookup: LookupGreaterThan, Value: value}
}

// Before builds a predicate matching fields ordered strictly before value.
func Before(field string, value any) Predicate {
	return Predicate{Field: field, Lookup: LookupLessThan, Value: value}
}

// match evaluates the predicate against one instance.
func (p Predicate) match(d *registry.Descriptor, obj Object) (bool, error) {
	switch p.Lookup {
	case LookupPK:
		want, ok := p.Value.(string)
		if !ok {
			return false, errors.NewFieldError(d.Name, p.Field)
		}
		// The pseudo-field "pk" compares the instance's own identity.
		if strings.EqualFold(p.Field, "pk") || !d.IsRelation(p.Field) {
			raw, err := d.Field(obj, p.Field)
			if err != nil {
				return false, err
			}
			got, ok := raw.(string)
			if !ok {
				return false, errors.NewFieldError(d.Name, p.Field)
			}
			return got == want, nil
		}
		got, err := d.RelationKey(obj, p.Field)
		if err != nil {
			return false, err
		}
		return got != "" && got == want, nil

	case LookupGreaterThan, LookupLessThan:
		raw, err := d.Field(obj, p.Field)
		if err != nil {
			return false, err
		}
		c, err := compareValues(raw, p.Value, d.Name, p.Field)
		if err != nil {
			return false, err
		}
		if p.Lookup == LookupGreaterThan {
			return c > 0, nil
		}
		return c < 0, nil

	default:
		raw, err := d.Field(obj, p.Field)
		if err != nil {
			return false, err
		}
		return equalValues(raw, p.Value), nil
	}
}

// matchAll reports whether obj satisfies every predicate in the group.
func matchAll(d *registry.Descriptor, obj Object, preds []Predicate) (bool, error) {
	for _, p := range preds {
		ok, err := p.match(d, obj)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

var timeType = reflect.TypeOf(time.Time{})

// equalValues compares a field value with a predicate value, treating
// time-like types by instant rather than by representation.
func equalValues(a, b any) bool {
	at, aok := asTime(a)
	bt, bok := asTime(b)
	if aok && bok {
		return at.Equal(bt)
	}
	return reflect.DeepEqual(a, b)
}

// compareValues orders two field values. Supports time-like, string, integer,
// unsigned and float values; anything else fails with a FieldError.
func compareValues(a, b any, model, field string) (int, error) {
	if at, ok := asTime(a); ok {
		bt, ok := asTime(b)
		if !ok {
			return 0, errors.NewFieldError(model, field)
		}
		return at.Compare(bt), nil
	}

	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if !av.IsValid() || !bv.IsValid() || av.Kind() != bv.Kind() {
		return 0, errors.NewFieldError(model, field)
	}

	switch av.Kind() {
	case reflect.String:
		return strings.Compare(av.String(), bv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmpOrdered(av.Int(), bv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmpOrdered(av.Uint(), bv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return cmpOrdered(av.Float(), bv.Float()), nil
	}
	return 0, errors.NewFieldError(model, field)
}

func cmpOrdered[V int64 | uint64 | float64](a, b V) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// asTime normalizes time.Time and named types with time.Time as their
// underlying type (strfmt.DateTime and friends).
func asTime(v any) (time.Time, bool) {
	if t, ok := v.(time.Time); ok {
		return t, true
	}
	rv := reflect.ValueOf(v)
	if rv.IsValid() && rv.Type().ConvertibleTo(timeType) && rv.Kind() == reflect.Struct {
		return rv.Convert(timeType).Interface().(time.Time), true
	}
	return time.Time{}, false
}
