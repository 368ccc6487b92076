/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"reflect"
	"strings"
	"sync"

	"github.com/suparena/objectstore/errors"
)

var (
	descriptors = make(map[reflect.Type]*Descriptor)
	mu          sync.RWMutex
)

// keyed is satisfied by any stored object reference; a struct field of a
// keyed type is treated as a relation field for pk lookups.
type keyed interface {
	PK() string
}

var keyedType = reflect.TypeOf((*keyed)(nil)).Elem()

// Descriptor holds the field-access metadata for one registered model type.
// Built once at registration time; read-only afterwards.
type Descriptor struct {
	Name      string
	Type      reflect.Type
	fields    map[string][]int
	relations map[string]bool
}

// Register associates the struct type T with a model name and builds its
// field-accessor table. Field names are matched case-insensitively; fields of
// embedded structs are flattened; an "ID" field is additionally reachable as
// "pk". Registration is idempotent for the same type.
func Register[T any](name string) *Descriptor {
	var zero T
	t := reflect.TypeOf(zero)

	d := &Descriptor{
		Name:      name,
		Type:      t,
		fields:    make(map[string][]int),
		relations: make(map[string]bool),
	}
	collectFields(t, nil, d)
	if idx, ok := d.fields["id"]; ok {
		d.fields["pk"] = idx
	}

	mu.Lock()
	defer mu.Unlock()
	descriptors[t] = d
	return d
}

// Lookup retrieves the descriptor for type T, if any.
func Lookup[T any]() (*Descriptor, bool) {
	var zero T
	t := reflect.TypeOf(zero)

	mu.RLock()
	defer mu.RUnlock()
	d, ok := descriptors[t]
	return d, ok
}

func collectFields(t reflect.Type, base []int, d *Descriptor) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		idx := make([]int, 0, len(base)+1)
		idx = append(append(idx, base...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			collectFields(f.Type, idx, d)
			continue
		}
		if !f.IsExported() {
			continue
		}

		key := strings.ToLower(f.Name)
		d.fields[key] = idx
		if f.Type.Implements(keyedType) {
			d.relations[key] = true
		}
	}
}

// HasField reports whether the model declares the named field.
func (d *Descriptor) HasField(name string) bool {
	_, ok := d.fields[strings.ToLower(name)]
	return ok
}

// IsRelation reports whether the named field holds a reference to another
// stored object.
func (d *Descriptor) IsRelation(name string) bool {
	return d.relations[strings.ToLower(name)]
}

// Field returns the named field's value from obj, which must be a pointer to
// (or value of) the registered struct type.
func (d *Descriptor) Field(obj any, name string) (any, error) {
	idx, ok := d.fields[strings.ToLower(name)]
	if !ok {
		return nil, errors.NewFieldError(d.Name, name)
	}

	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v.FieldByIndex(idx).Interface(), nil
}

// SetField assigns value to the named field of obj, which must be a pointer
// to the registered struct type. The value must be assignable to the field.
func (d *Descriptor) SetField(obj any, name string, value any) error {
	idx, ok := d.fields[strings.ToLower(name)]
	if !ok {
		return errors.NewFieldError(d.Name, name)
	}

	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return errors.NewFieldError(d.Name, name)
	}
	field := v.Elem().FieldByIndex(idx)

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || !rv.Type().AssignableTo(field.Type()) {
		return errors.NewFieldError(d.Name, name)
	}
	field.Set(rv)
	return nil
}

// RelationKey extracts the primary key of the related object held in the
// named field. A nil reference yields ("", nil).
func (d *Descriptor) RelationKey(obj any, name string) (string, error) {
	raw, err := d.Field(obj, name)
	if err != nil {
		return "", err
	}

	rv := reflect.ValueOf(raw)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return "", nil
	}
	k, ok := raw.(keyed)
	if !ok {
		return "", errors.NewFieldError(d.Name, name)
	}
	return k.PK(), nil
}
