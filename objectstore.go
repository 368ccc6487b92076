/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore

import (
	"math/rand"
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/objectstore/errors"
)

// Store owns the canonical lifetime of every stored instance. It maps model
// names to ordered collections and is always constructed explicitly; there is
// no ambient package-level store, so tests and tenants get isolated state.
//
// All mutations and every snapshot acquisition run under the store's lock.
type Store struct {
	mu          sync.RWMutex
	collections map[string][]Object
	managers    map[reflect.Type]any

	log *zap.Logger
	now func() time.Time
	rng *rand.Rand
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation-level debug logging.
// The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the timestamp source. The default is time.Now in UTC.
// Useful for deterministic Created/Updated values in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithRand sets the randomness source used by Random(), making random
// selection reproducible under a fixed seed.
func WithRand(rng *rand.Rand) Option {
	return func(s *Store) { s.rng = rng }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string][]Object),
		managers:    make(map[reflect.Type]any),
		log:         zap.NewNop(),
		now:         func() time.Time { return time.Now().UTC() },
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Models returns the names of all collections the store has materialized.
func (s *Store) Models() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names
}

// Reset empties every collection. Intended for test teardown; registered
// model metadata is unaffected.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections = make(map[string][]Object)
	s.log.Debug("store reset")
}

// snapshot returns a copy of the named collection in insertion order.
// Queries evaluate against the snapshot taken at terminal-op call time.
func (s *Store) snapshot(name string) []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := s.collections[name]
	out := make([]Object, len(items))
	copy(out, items)
	return out
}

// insert appends obj to the named collection. The collection is created on
// first use. Appending is the single point where an instance becomes visible
// to queries. Fails when the identity is already present.
func (s *Store) insert(name string, obj Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(name, obj.PK()) >= 0 {
		return errors.NewAlreadyExistsError(name, obj.PK())
	}
	s.collections[name] = append(s.collections[name], obj)
	s.log.Debug("object added", zap.String("model", name), zap.String("pk", obj.PK()))
	return nil
}

// remove deletes the instance with the given identity. Removal of an absent
// identity fails with NotFoundError; it is never a silent no-op.
func (s *Store) remove(name, pk string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(name, pk)
	if i < 0 {
		return errors.NewNotFoundError(name, pk)
	}
	items := s.collections[name]
	s.collections[name] = append(items[:i], items[i+1:]...)
	s.log.Debug("object removed", zap.String("model", name), zap.String("pk", pk))
	return nil
}

// clear empties the named collection.
func (s *Store) clear(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collections[name] = nil
	s.log.Debug("collection cleared", zap.String("model", name))
}

// contains reports whether the named collection holds the identity.
func (s *Store) contains(name, pk string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(name, pk) >= 0
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(name, pk string) int {
	for i, obj := range s.collections[name] {
		if obj.PK() == pk {
			return i
		}
	}
	return -1
}

// timestamp returns the current store time.
func (s *Store) timestamp() time.Time {
	return s.now()
}

// intn draws from the store's randomness source.
func (s *Store) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
