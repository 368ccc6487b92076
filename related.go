/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/objectstore/errors"
)

// RelatedManager is a Manager scoped to a single owning instance's relation.
// Every query it runs is implicitly filtered to instances whose relation
// field (named after the lower-cased owner type) references the owner's
// primary key. It is built fresh on every Related call, never cached.
//
// The type split between Manager and RelatedManager enforces the access
// direction at compile time: a Manager carries no owner and a RelatedManager
// cannot exist without one.
type RelatedManager[T any] struct {
	Manager[T]
	owner Object
}

// Related builds the instance-scoped manager for model type T under the
// given owner. It fails with AccessError when the owner is nil or has no
// primary key yet; an unsaved owner has no identity to scope by.
func Related[T any](s *Store, owner Object) (*RelatedManager[T], error) {
	d := descriptorFor[T]()

	if owner == nil || reflect.ValueOf(owner).IsNil() {
		return nil, errors.NewAccessError("RelatedManager", d.Name, "nil owner instance")
	}
	if owner.PK() == "" {
		return nil, errors.NewAccessError("RelatedManager", d.Name,
			fmt.Sprintf("owner %s has no primary key; add it to the store first", ownerField(owner)))
	}

	field := ownerField(owner)
	if !d.HasField(field) || !d.IsRelation(field) {
		return nil, errors.NewAccessError("RelatedManager", d.Name,
			fmt.Sprintf("%s declares no %q relation field", d.Name, field))
	}

	return &RelatedManager[T]{
		Manager: Manager[T]{
			store: s,
			desc:  d,
			scope: []Predicate{PK(field, owner.PK())},
		},
		owner: owner,
	}, nil
}

// Add binds obj to the owner through its relation field before storing it,
// so the instance is visible to the scope that created it.
func (m *RelatedManager[T]) Add(obj *T) (*T, error) {
	if err := m.desc.SetField(obj, ownerField(m.owner), m.owner); err != nil {
		return nil, err
	}
	return m.Manager.Add(obj)
}

// Save stores obj through the scope: a new instance is bound to the owner
// before it is added, an existing member only has Updated refreshed.
func (m *RelatedManager[T]) Save(obj *T) (*T, error) {
	mo := asMutable(obj)
	if mo.PK() == "" || !m.store.contains(m.desc.Name, mo.PK()) {
		return m.Add(obj)
	}
	mo.touch(m.store.timestamp())
	return obj, nil
}

// GetOrCreate scopes creation as well as lookup: a newly created instance is
// bound to the owner through its relation field.
func (m *RelatedManager[T]) GetOrCreate(defaults map[string]any, preds ...Predicate) (*T, bool, error) {
	merged := make(map[string]any, len(defaults)+1)
	for k, v := range defaults {
		merged[k] = v
	}
	merged[ownerField(m.owner)] = m.owner
	return m.Manager.GetOrCreate(merged, preds...)
}

// Owner returns the owning instance this manager is scoped to.
func (m *RelatedManager[T]) Owner() Object {
	return m.owner
}

func (m *RelatedManager[T]) String() string {
	return fmt.Sprintf("<RelatedManager: %s via %s>", m.desc.Name, ownerField(m.owner))
}

// ownerField derives the relation field name from the owner's concrete type,
// mirroring the lower-cased type-name convention of the query contract.
func ownerField(owner Object) string {
	t := reflect.TypeOf(owner)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}
