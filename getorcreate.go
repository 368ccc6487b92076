/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/suparena/objectstore/errors"
)

// GetOrCreate attempts Get with the given predicates; when nothing matches it
// constructs a new instance from the predicate values merged with defaults,
// stamps and stores it, and reports created=true. Predicate values win over
// defaults. Only exact predicates can describe a new instance.
//
// Called twice with identical arguments and no intervening deletion, the
// second call returns the same instance with created=false.
func (q *QuerySet[T]) GetOrCreate(defaults map[string]any, preds ...Predicate) (*T, bool, error) {
	obj, err := q.Get(preds...)
	if err == nil {
		return obj, false, nil
	}
	if !errors.IsDoesNotExist(err) {
		return nil, false, err
	}

	values := make(map[string]any, len(preds)+len(defaults))
	for _, p := range preds {
		if p.Lookup != LookupExact {
			return nil, false, errors.NewFieldError(q.desc.Name, p.Field)
		}
		values[normalizeField(p.Field)] = p.Value
	}
	for k, v := range defaults {
		key := normalizeField(k)
		if _, ok := values[key]; !ok {
			values[key] = v
		}
	}

	created := new(T)
	scalars := make(map[string]any)
	for k, v := range values {
		if !q.desc.HasField(k) {
			return nil, false, errors.NewFieldError(q.desc.Name, k)
		}
		switch reflect.ValueOf(v).Kind() {
		case reflect.Struct, reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
			// Set by identity; decoding would copy the referenced object
			// and mangle time-like structs with unexported fields.
			if err := q.desc.SetField(created, k, v); err != nil {
				return nil, false, err
			}
		default:
			scalars[k] = v
		}
	}
	if len(scalars) > 0 {
		if err := mapstructure.Decode(scalars, created); err != nil {
			return nil, false, err
		}
	}

	added, err := addObject(q.store, q.desc, created)
	if err != nil {
		return nil, false, err
	}
	return added, true, nil
}

// normalizeField lowers the key and resolves the "pk" alias so predicate
// fields and default keys land on the same struct field.
func normalizeField(name string) string {
	key := strings.ToLower(name)
	if key == "pk" {
		return "id"
	}
	return key
}
