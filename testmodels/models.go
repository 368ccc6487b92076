/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels provides shared model types for ObjectStore tests.
package testmodels

import (
	"github.com/go-openapi/strfmt"

	"github.com/suparena/objectstore"
)

// Author is an owning model; Books reference it.
type Author struct {
	objectstore.Model

	// Name of the author.
	Name string `json:"Name"`
}

// Book references its Author; the field makes it reachable from
// an instance-scoped manager on an Author.
type Book struct {
	objectstore.Model

	// Title of the book.
	Title string `json:"Title"`

	// Pages count.
	Pages int `json:"Pages,omitempty"`

	// Author that owns this book.
	Author *Author `json:"Author,omitempty"`
}

// RatingSystem mirrors an API-generated model shape with strfmt timestamps.
type RatingSystem struct {
	objectstore.Model

	// Name of the rating system.
	// Required: true
	Name string `json:"Name"`

	// A description of the rating system.
	Description string `json:"Description,omitempty"`

	// Timestamp when the system was published.
	// Format: date-time
	PublishedAt strfmt.DateTime `json:"PublishedAt,omitempty"`
}

func init() {
	objectstore.RegisterModel[Author]("Author")
	objectstore.RegisterModel[Book]("Book")
	objectstore.RegisterModel[RatingSystem]("RatingSystem")
}
