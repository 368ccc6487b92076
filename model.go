/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"fmt"
	"reflect"
	"time"

	"github.com/suparena/objectstore/registry"
)

// Object is the contract every stored instance satisfies: a unique primary
// key plus the two timestamps the store stamps at insertion time.
type Object interface {
	PK() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

// mutable is the write side of Object, satisfied through the embedded Model.
type mutable interface {
	Object
	setPK(string)
	stamp(time.Time)
	touch(time.Time)
}

// Model is the embeddable base for stored types. Embedding it gives a type
// its identity and timestamp fields and satisfies Object on the pointer type.
//
//	type Book struct {
//	    objectstore.Model
//	    Title string
//	}
type Model struct {
	ID      string    `json:"id"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// PK returns the unique identity of the instance.
func (m *Model) PK() string { return m.ID }

// CreatedAt returns the insertion timestamp (UTC).
func (m *Model) CreatedAt() time.Time { return m.Created }

// UpdatedAt returns the last save timestamp (UTC).
func (m *Model) UpdatedAt() time.Time { return m.Updated }

func (m *Model) setPK(id string) { m.ID = id }

// stamp sets both timestamps; called exactly once, at insertion.
func (m *Model) stamp(now time.Time) {
	m.Created = now
	m.Updated = now
}

// touch refreshes Updated; called on every subsequent save.
func (m *Model) touch(now time.Time) {
	m.Updated = now
}

// RegisterModel registers the struct type T under a model name, making it
// storable and queryable. T must embed Model. Typically called from init()
// or from code generated by the modelmap processor. Registering the same
// type again is a no-op beyond rebuilding its descriptor.
func RegisterModel[T any](name string) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("objectstore: model %q must be a struct type, got %v", name, t))
	}
	if !reflect.PointerTo(t).Implements(reflect.TypeOf((*Object)(nil)).Elem()) {
		panic(fmt.Sprintf("objectstore: model %q must embed objectstore.Model", name))
	}
	registry.Register[T](name)
}

// descriptorFor resolves the registered descriptor for T or panics; an
// unregistered model is a programming error, not a runtime condition.
func descriptorFor[T any]() *registry.Descriptor {
	d, ok := registry.Lookup[T]()
	if !ok {
		var zero T
		panic(fmt.Sprintf("objectstore: type %T is not a registered model", zero))
	}
	return d
}
