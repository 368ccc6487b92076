/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package objectstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/objectstore"
	oserrors "github.com/suparena/objectstore/errors"
	"github.com/suparena/objectstore/testmodels"
)

func strfmtTime(t time.Time) strfmt.DateTime {
	return strfmt.DateTime(t)
}

func seedBooks(t *testing.T, store *objectstore.Store, titles ...string) []*testmodels.Book {
	t.Helper()
	books := objectstore.ManagerFor[testmodels.Book](store)
	out := make([]*testmodels.Book, 0, len(titles))
	for i, title := range titles {
		b, err := books.Add(&testmodels.Book{Title: title, Pages: 100 * (i + 1)})
		require.NoError(t, err)
		out = append(out, b)
	}
	return out
}

func TestQuerySetIsLazy(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)

	// Built before any insertion; must see writes that happen later.
	qs := books.All()

	seedBooks(t, store, "a", "b")

	n, err := qs.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestFilterExcludeComplementary(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "a", "b", "a")

	p := objectstore.Exact("title", "a")
	n, err := books.All().Filter(p).Exclude(p).Count()
	require.NoError(t, err)
	assert.Zero(t, n, "filter and exclude over the same predicate must be empty")
}

func TestChainingIsImmutable(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "a", "b", "c")

	base := books.All()
	onlyA := base.Filter(objectstore.Exact("title", "a"))
	notA := base.Exclude(objectstore.Exact("title", "a"))

	nBase, err := base.Count()
	require.NoError(t, err)
	nA, err := onlyA.Count()
	require.NoError(t, err)
	nNotA, err := notA.Count()
	require.NoError(t, err)

	assert.Equal(t, 3, nBase, "deriving chains must not narrow the base")
	assert.Equal(t, 1, nA)
	assert.Equal(t, 2, nNotA)
}

func TestExcludeGroupsAreIndependent(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "a", "b", "c")

	// Each Exclude call drops its own match set.
	items, err := books.All().
		Exclude(objectstore.Exact("title", "a")).
		Exclude(objectstore.Exact("title", "b")).
		All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "c", items[0].Title)
}

func TestOrderBy(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "c", "a", "b")

	t.Run("StringField", func(t *testing.T) {
		items, err := books.All().OrderBy("title").All()
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{items[0].Title, items[1].Title, items[2].Title})
	})

	t.Run("Reversed", func(t *testing.T) {
		items, err := books.All().OrderBy("title").Reverse().All()
		require.NoError(t, err)
		assert.Equal(t, "c", items[0].Title)
	})

	t.Run("IntField", func(t *testing.T) {
		items, err := books.All().OrderBy("pages").All()
		require.NoError(t, err)
		assert.Equal(t, 100, items[0].Pages)
		assert.Equal(t, 300, items[2].Pages)
	})

	t.Run("UnknownField", func(t *testing.T) {
		_, err := books.All().OrderBy("publisher").All()
		require.Error(t, err)
		assert.True(t, oserrors.IsUnknownField(err))
	})
}

func TestNoneIsAlwaysEmpty(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "a", "b")

	items, err := books.None().All()
	require.NoError(t, err)
	assert.Empty(t, items)

	n, err := books.None().Filter(objectstore.Exact("title", "a")).Count()
	require.NoError(t, err)
	assert.Zero(t, n, "None survives further chaining")
}

func TestGetByPK(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	added := seedBooks(t, store, "a", "b")

	got, err := books.Get(objectstore.PK("pk", added[1].ID))
	require.NoError(t, err)
	assert.Same(t, added[1], got)
}

func TestCreatedRangeQueries(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	added := seedBooks(t, store, "a", "b", "c")

	cutoff := added[1].Created

	after, err := books.All().CreatedAfter(cutoff).All()
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "c", after[0].Title)

	before, err := books.All().CreatedBefore(cutoff).All()
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "a", before[0].Title)

	between, err := books.All().CreatedBetween(added[0].Created, added[2].Created).All()
	require.NoError(t, err)
	require.Len(t, between, 1)
	assert.Equal(t, "b", between[0].Title)
}

func TestEarliestLatestByCustomField(t *testing.T) {
	store := newTestStore()
	systems := objectstore.ManagerFor[testmodels.RatingSystem](store)

	base := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"elo", "glicko", "trueskill"} {
		_, err := systems.Add(&testmodels.RatingSystem{
			Name:        name,
			PublishedAt: strfmtTime(base.AddDate(i, 0, 0)),
		})
		require.NoError(t, err)
	}

	earliest, err := systems.Earliest("publishedat")
	require.NoError(t, err)
	require.NotNil(t, earliest)
	assert.Equal(t, "elo", earliest.Name)

	latest, err := systems.Latest("publishedat")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "trueskill", latest.Name)
}

func TestSnapshotTakenAtEvaluation(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	added := seedBooks(t, store, "a", "b")

	items, err := books.All().All()
	require.NoError(t, err)
	require.Len(t, items, 2)

	require.NoError(t, books.Delete(added[0]))

	// The materialized result is a snapshot; the live query sees the delete.
	assert.Len(t, items, 2)
	n, err := books.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestStream(t *testing.T) {
	store := newTestStore()
	books := objectstore.ManagerFor[testmodels.Book](store)
	seedBooks(t, store, "a", "b", "c")

	t.Run("YieldsAllMatches", func(t *testing.T) {
		var titles []string
		for res := range books.All().Stream(context.Background()) {
			require.NoError(t, res.Error)
			titles = append(titles, res.Item.Title)
		}
		assert.Equal(t, []string{"a", "b", "c"}, titles)
	})

	t.Run("IndexesAreSequential", func(t *testing.T) {
		var i int64
		for res := range books.All().Stream(context.Background(), objectstore.WithBufferSize(1)) {
			assert.Equal(t, i, res.Meta.Index)
			i++
		}
		assert.Equal(t, int64(3), i)
	})

	t.Run("CancellationStopsStream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ch := books.All().Stream(ctx, objectstore.WithBufferSize(0))

		res, ok := <-ch
		require.True(t, ok)
		require.NoError(t, res.Error)
		cancel()

		for range ch {
			// drain whatever was already in flight
		}
	})

	t.Run("EvaluationErrorIsDelivered", func(t *testing.T) {
		ch := books.Filter(objectstore.Exact("publisher", "x")).Stream(context.Background())
		res, ok := <-ch
		require.True(t, ok)
		require.Error(t, res.Error)
		assert.True(t, oserrors.IsUnknownField(res.Error))
		_, ok = <-ch
		assert.False(t, ok, "stream closes after an error")
	})

	t.Run("EvaluationErrorWithUnbufferedChannel", func(t *testing.T) {
		// Stream must return before anyone receives, even when the error
		// result cannot be buffered.
		done := make(chan objectstore.StreamResult[testmodels.Book], 1)
		go func() {
			ch := books.Filter(objectstore.Exact("publisher", "x")).
				Stream(context.Background(), objectstore.WithBufferSize(0))
			done <- <-ch
		}()

		select {
		case res := <-done:
			require.Error(t, res.Error)
			assert.True(t, oserrors.IsUnknownField(res.Error))
		case <-time.After(2 * time.Second):
			t.Fatal("Stream did not deliver the evaluation error")
		}
	})
}
