/*
Package objectstore provides an in-process object store with
relational-database-like query semantics over plain Go struct instances,
without any backing file or network database.

The library is built around three pieces:
  - Store: an explicitly constructed, per-process mapping from model name to
    an ordered collection of live instances. The store owns the canonical
    lifetime of every instance; tests construct an isolated store per run.
  - QuerySet: a lazy, immutable, chainable query over a snapshot of one
    collection, with filtering, exclusion, ordering, random selection,
    get-or-create and existence checks.
  - Manager / RelatedManager: the class-level and instance-scoped entry
    points. A Manager is cached per (store, type); a RelatedManager is built
    fresh per access and implicitly filtered by its owner's primary key.

Key Features:
  - Type-safe operations using Go generics
  - Typed predicates (Exact, PK, After, Before) instead of string lookups
  - Insertion-order collections with UTC Created/Updated stamping
  - Seedable randomness and injectable clock for reproducible tests
  - Semantic error types for better error handling
  - Thread-safe: mutations and snapshots run under the store's lock

Basic Usage:

	type Book struct {
	    objectstore.Model
	    Title  string
	    Author *Author
	}

	func init() {
	    objectstore.RegisterModel[Book]("Book")
	}

	store := objectstore.New()
	books := objectstore.ManagerFor[Book](store)

	book, _ := books.Add(&Book{Title: "Dune"})
	match, err := books.Get(objectstore.Exact("title", "Dune"))

	// Instance-scoped access
	shelf, _ := objectstore.Related[Book](store, author)
	mine, _ := shelf.All().All()

For more information, see the documentation at https://github.com/suparena/objectstore
*/
package objectstore
