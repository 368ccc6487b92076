/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"sort"
	"time"

	"github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/registry"
)

// QuerySet is a lazy, immutable description of filters and ordering over one
// model's collection. Chain steps return new QuerySets; nothing touches the
// store until a terminal operation runs, and every terminal operation
// evaluates against the snapshot taken at that moment. A QuerySet built
// before an insertion therefore reflects the insertion when evaluated after
// it.
type QuerySet[T any] struct {
	store *Store
	desc  *registry.Descriptor

	include []Predicate
	exclude [][]Predicate
	order   string
	reverse bool
	empty   bool
}

func newQuerySet[T any](s *Store, d *registry.Descriptor) *QuerySet[T] {
	return &QuerySet[T]{store: s, desc: d}
}

func (q *QuerySet[T]) clone() *QuerySet[T] {
	c := *q
	c.include = append([]Predicate(nil), q.include...)
	c.exclude = append([][]Predicate(nil), q.exclude...)
	return &c
}

// Filter narrows the QuerySet to instances matching every predicate.
func (q *QuerySet[T]) Filter(preds ...Predicate) *QuerySet[T] {
	c := q.clone()
	c.include = append(c.include, preds...)
	return c
}

// Exclude removes instances matching every predicate in this call. Filter and
// Exclude over the same predicate are complementary: Filter(p).Exclude(p) is
// always empty.
func (q *QuerySet[T]) Exclude(preds ...Predicate) *QuerySet[T] {
	c := q.clone()
	c.exclude = append(c.exclude, preds)
	return c
}

// OrderBy sorts results ascending by the named field. Without it, results
// keep insertion order.
func (q *QuerySet[T]) OrderBy(field string) *QuerySet[T] {
	c := q.clone()
	c.order = field
	c.reverse = false
	return c
}

// Reverse flips the result order.
func (q *QuerySet[T]) Reverse() *QuerySet[T] {
	c := q.clone()
	c.reverse = !q.reverse
	return c
}

// CreatedAfter narrows to instances created strictly after t.
func (q *QuerySet[T]) CreatedAfter(t time.Time) *QuerySet[T] {
	return q.Filter(After("created", t))
}

// CreatedBefore narrows to instances created strictly before t.
func (q *QuerySet[T]) CreatedBefore(t time.Time) *QuerySet[T] {
	return q.Filter(Before("created", t))
}

// CreatedBetween narrows to instances created in (start, end).
func (q *QuerySet[T]) CreatedBetween(start, end time.Time) *QuerySet[T] {
	return q.Filter(After("created", start), Before("created", end))
}

// evaluate snapshots the collection and applies the chain.
func (q *QuerySet[T]) evaluate() ([]*T, error) {
	if q.empty {
		return nil, nil
	}

	snap := q.store.snapshot(q.desc.Name)
	out := make([]*T, 0, len(snap))
	for _, obj := range snap {
		ok, err := matchAll(q.desc, obj, q.include)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		excluded := false
		for _, group := range q.exclude {
			if len(group) == 0 {
				continue
			}
			hit, err := matchAll(q.desc, obj, group)
			if err != nil {
				return nil, err
			}
			if hit {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		out = append(out, any(obj).(*T))
	}

	if q.order != "" {
		if err := q.sortBy(out, q.order); err != nil {
			return nil, err
		}
	}
	if q.reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (q *QuerySet[T]) sortBy(items []*T, field string) error {
	keys := make([]any, len(items))
	for i, it := range items {
		v, err := q.desc.Field(it, field)
		if err != nil {
			return err
		}
		keys[i] = v
	}
	// One model field has one static type, so a single probe catches
	// non-orderable fields before sorting starts.
	if len(keys) > 1 {
		if _, err := compareValues(keys[0], keys[1], q.desc.Name, field); err != nil {
			return err
		}
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		c, _ := compareValues(keys[idx[a]], keys[idx[b]], q.desc.Name, field)
		return c < 0
	})

	sorted := make([]*T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
	return nil
}

// All evaluates the QuerySet and returns matching instances.
func (q *QuerySet[T]) All() ([]*T, error) {
	return q.evaluate()
}

// Count returns the number of matching instances.
func (q *QuerySet[T]) Count() (int, error) {
	items, err := q.evaluate()
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Exists reports whether the QuerySet matches anything.
func (q *QuerySet[T]) Exists() (bool, error) {
	n, err := q.Count()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get narrows by the given predicates and returns the single match. Zero
// matches fail with DoesNotExistError, more than one with
// MultipleObjectsError.
func (q *QuerySet[T]) Get(preds ...Predicate) (*T, error) {
	items, err := q.Filter(preds...).evaluate()
	if err != nil {
		return nil, err
	}
	switch len(items) {
	case 0:
		return nil, errors.NewDoesNotExistError(q.desc.Name)
	case 1:
		return items[0], nil
	default:
		return nil, errors.NewMultipleObjectsError(q.desc.Name, len(items))
	}
}

// Earliest returns the instance with the minimal value of the named date
// field, or nil when nothing matches. An empty field name means "created".
func (q *QuerySet[T]) Earliest(field string) (*T, error) {
	return q.extreme(field, -1)
}

// Latest returns the instance with the maximal value of the named date field,
// or nil when nothing matches. An empty field name means "created".
func (q *QuerySet[T]) Latest(field string) (*T, error) {
	return q.extreme(field, 1)
}

// First returns the earliest instance by creation order, or nil.
func (q *QuerySet[T]) First() (*T, error) {
	return q.Earliest("")
}

// Last returns the latest instance by creation order, or nil.
func (q *QuerySet[T]) Last() (*T, error) {
	return q.Latest("")
}

func (q *QuerySet[T]) extreme(field string, direction int) (*T, error) {
	if field == "" {
		field = "created"
	}
	items, err := q.evaluate()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}

	best := items[0]
	bestKey, err := q.desc.Field(best, field)
	if err != nil {
		return nil, err
	}
	for _, it := range items[1:] {
		key, err := q.desc.Field(it, field)
		if err != nil {
			return nil, err
		}
		c, err := compareValues(key, bestKey, q.desc.Name, field)
		if err != nil {
			return nil, err
		}
		// Ties resolve by insertion order: Earliest keeps the first-inserted,
		// Latest advances to the later-inserted.
		if c*direction > 0 || (c == 0 && direction > 0) {
			best, bestKey = it, key
		}
	}
	return best, nil
}

// Random returns a uniformly random matching instance, or nil when nothing
// matches. The store's randomness source controls reproducibility.
func (q *QuerySet[T]) Random() (*T, error) {
	items, err := q.evaluate()
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[q.store.intn(len(items))], nil
}

// None returns an always-empty QuerySet over the same model, usable as the
// identity in reduction-style composition.
func (q *QuerySet[T]) None() *QuerySet[T] {
	c := q.clone()
	c.empty = true
	return c
}
