/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/objectstore"
	oserrors "github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/testmodels"
)

func TestGetOrCreate(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)

	first, created, err := books.GetOrCreate(nil, objectstore.Exact("title", "Dune"))
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, created)
	assert.Equal(t, "Dune", first.Title)
	assert.NotEmpty(t, first.ID)
	assert.True(t, first.Created.Equal(first.Updated))

	second, created, err := books.GetOrCreate(nil, objectstore.Exact("title", "Dune"))
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, first, second, "second identical call returns the stored instance")

	n, err := books.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "the pair of calls inserts exactly once")
}

func TestGetOrCreateDefaults(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)

	t.Run("DefaultsFillRemainingFields", func(t *testing.T) {
		b, created, err := books.GetOrCreate(
			map[string]any{"pages": 412},
			objectstore.Exact("title", "Hyperion"),
		)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, 412, b.Pages)
	})

	t.Run("PredicateWinsOverDefault", func(t *testing.T) {
		b, created, err := books.GetOrCreate(
			map[string]any{"title": "ignored"},
			objectstore.Exact("title", "Endymion"),
		)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Endymion", b.Title)
	})

	t.Run("RelationDefaultKeepsIdentity", func(t *testing.T) {
		authors := objectstore.ManagerFor[testmodels.Author](store)
		a, err := authors.Add(&testmodels.Author{Name: "Simmons"})
		require.NoError(t, err)

		b, created, err := books.GetOrCreate(
			map[string]any{"author": a},
			objectstore.Exact("title", "Ilium"),
		)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Same(t, a, b.Author, "relation defaults must not copy the referenced object")
	})
}

func TestGetOrCreateRejectsNonExactPredicates(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)

	_, _, err := books.GetOrCreate(nil, objectstore.After("pages", 100))
	require.Error(t, err)
	assert.True(t, oserrors.IsUnknownField(err), "only equality can describe a new instance")
}

func TestGetOrCreateUnknownField(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)

	_, _, err := books.GetOrCreate(map[string]any{"publisher": "x"}, objectstore.Exact("title", "Dune"))
	require.Error(t, err)
	assert.True(t, oserrors.IsUnknownField(err))
}

func TestGetOrCreateFailsOnMultipleMatches(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "same", "same")

	_, _, err := books.GetOrCreate(nil, objectstore.Exact("title", "same"))
	require.Error(t, err)
	assert.True(t, oserrors.IsMultipleObjects(err))
}
