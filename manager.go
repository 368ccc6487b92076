/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/registry"
)

// Manager is the class-level query and mutation entry point for one model
// type on one store. It is stateless beyond that binding; every query proxy
// routes through queryset(), and every mutation writes through to the store.
//
// Managers are obtained with ManagerFor, never constructed directly; an
// instance-scoped view of the same collection is a RelatedManager.
type Manager[T any] struct {
	store *Store
	desc  *registry.Descriptor

	// scope is the implicit predicate set of instance-scoped managers;
	// empty for class-level managers.
	scope []Predicate
}

// ManagerFor returns the Manager for model type T on the given store,
// lazily constructing and caching it per (store, type). T must be a
// registered model.
func ManagerFor[T any](s *Store) *Manager[T] {
	d := descriptorFor[T]()

	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.managers[d.Type]; ok {
		return m.(*Manager[T])
	}
	m := &Manager[T]{store: s, desc: d}
	s.managers[d.Type] = m
	return m
}

// queryset builds the manager's base QuerySet. Instance-scoped managers
// compose their owner predicate here, which is why every proxy operation
// inherits the scoping transparently.
func (m *Manager[T]) queryset() *QuerySet[T] {
	q := newQuerySet[T](m.store, m.desc)
	if len(m.scope) > 0 {
		q = q.Filter(m.scope...)
	}
	return q
}

// All returns an unevaluated QuerySet over the full current collection.
func (m *Manager[T]) All() *QuerySet[T] {
	return m.queryset()
}

// Filter proxies QuerySet.Filter.
func (m *Manager[T]) Filter(preds ...Predicate) *QuerySet[T] {
	return m.queryset().Filter(preds...)
}

// Exclude proxies QuerySet.Exclude.
func (m *Manager[T]) Exclude(preds ...Predicate) *QuerySet[T] {
	return m.queryset().Exclude(preds...)
}

// Count returns the number of instances currently matching All().
func (m *Manager[T]) Count() (int, error) {
	return m.queryset().Count()
}

// Exists proxies QuerySet.Exists.
func (m *Manager[T]) Exists() (bool, error) {
	return m.queryset().Exists()
}

// Get proxies QuerySet.Get.
func (m *Manager[T]) Get(preds ...Predicate) (*T, error) {
	return m.queryset().Get(preds...)
}

// GetOrCreate proxies QuerySet.GetOrCreate.
func (m *Manager[T]) GetOrCreate(defaults map[string]any, preds ...Predicate) (*T, bool, error) {
	return m.queryset().GetOrCreate(defaults, preds...)
}

// First returns the first instance created, or nil.
func (m *Manager[T]) First() (*T, error) {
	return m.queryset().First()
}

// Last returns the last instance created, or nil.
func (m *Manager[T]) Last() (*T, error) {
	return m.queryset().Last()
}

// Earliest returns the earliest instance by the named date field ("created"
// when empty), or nil.
func (m *Manager[T]) Earliest(field string) (*T, error) {
	return m.queryset().Earliest(field)
}

// Latest returns the latest instance by the named date field ("created" when
// empty), or nil.
func (m *Manager[T]) Latest(field string) (*T, error) {
	return m.queryset().Latest(field)
}

// Random returns a random instance, or nil when the collection is empty.
func (m *Manager[T]) Random() (*T, error) {
	return m.queryset().Random()
}

// None returns an always-empty QuerySet.
func (m *Manager[T]) None() *QuerySet[T] {
	return m.queryset().None()
}

// Add stamps obj with the store clock (Created == Updated, UTC), assigns a
// UUID primary key when none is set, and appends it to the store. Appending
// makes the instance visible to every query. This is the low-level primitive
// under save flows; most callers want Save.
func (m *Manager[T]) Add(obj *T) (*T, error) {
	return addObject(m.store, m.desc, obj)
}

// Save adds obj when its identity is absent and otherwise refreshes Updated.
func (m *Manager[T]) Save(obj *T) (*T, error) {
	mo := asMutable(obj)
	if mo.PK() == "" || !m.store.contains(m.desc.Name, mo.PK()) {
		return m.Add(obj)
	}
	mo.touch(m.store.timestamp())
	return obj, nil
}

// Delete removes obj from the store by identity. Deleting an instance that
// is not in the store fails with NotFoundError.
func (m *Manager[T]) Delete(obj *T) error {
	return m.store.remove(m.desc.Name, asMutable(obj).PK())
}

// Clear empties the model's collection.
func (m *Manager[T]) Clear() {
	m.store.clear(m.desc.Name)
}

// Contains reports whether obj's identity is in the collection.
func (m *Manager[T]) Contains(obj *T) bool {
	pk := asMutable(obj).PK()
	return pk != "" && m.store.contains(m.desc.Name, pk)
}

// ContainsName reports whether an instance with the given Name field value
// exists. A narrow convenience for models that declare a Name field; prefer
// Contains for identity membership.
func (m *Manager[T]) ContainsName(name string) (bool, error) {
	if !m.desc.HasField("name") {
		return false, errors.NewFieldError(m.desc.Name, "name")
	}
	return m.Filter(Exact("name", name)).Exists()
}

func (m *Manager[T]) String() string {
	return fmt.Sprintf("<Manager: %s>", m.desc.Name)
}

// addObject is shared by Manager.Add and QuerySet.GetOrCreate.
func addObject[T any](s *Store, d *registry.Descriptor, obj *T) (*T, error) {
	mo := asMutable(obj)
	if mo.PK() == "" {
		mo.setPK(uuid.NewString())
	}
	mo.stamp(s.timestamp())
	if err := s.insert(d.Name, mo); err != nil {
		return nil, err
	}
	return obj, nil
}

// asMutable asserts the write side of Object; RegisterModel guarantees it for
// registered types, so failure here means an unregistered or malformed model.
func asMutable(obj any) mutable {
	mo, ok := obj.(mutable)
	if !ok {
		panic(fmt.Sprintf("objectstore: %T does not embed objectstore.Model", obj))
	}
	return mo
}

// interface checks
var (
	_ Object  = (*Model)(nil)
	_ mutable = (*Model)(nil)
)
