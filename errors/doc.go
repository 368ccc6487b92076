/*
Package errors provides semantic error types for the ObjectStore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrAccessDenied    = errors.New("manager access denied")
	    ErrDoesNotExist    = errors.New("object does not exist")
	    ErrMultipleObjects = errors.New("multiple objects returned")
	    ErrNotFound        = errors.New("object not found")
	    ErrUnknownField    = errors.New("unknown field")
	)

Usage:

	// Check error type
	book, err := books.Get(objectstore.Exact("title", "Dune"))
	if err != nil {
	    if errors.IsDoesNotExist(err) {
	        // Handle zero matches
	        return nil, fmt.Errorf("no such book")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewDoesNotExistError("Book")
	err := errors.NewMultipleObjectsError("Book", 3)
	err := errors.NewNotFoundError("Book", "b-42")

Strict lookups (Get) fail with DoesNotExistError or MultipleObjectsError.
The relaxed terminal operations (First, Last, Earliest, Latest, Random)
deliberately return nil instead of an error on empty collections; that
asymmetry is part of the query contract, not an oversight.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
