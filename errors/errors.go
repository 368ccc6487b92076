/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrAccessDenied is returned when a manager is reached from the wrong side
	ErrAccessDenied = errors.New("manager access denied")

	// ErrDoesNotExist is returned when a strict get matched zero objects
	ErrDoesNotExist = errors.New("object does not exist")

	// ErrMultipleObjects is returned when a strict get matched more than one object
	ErrMultipleObjects = errors.New("multiple objects returned")

	// ErrNotFound is returned when removal targets an identity absent from the store
	ErrNotFound = errors.New("object not found")

	// ErrAlreadyExists is returned when insertion would duplicate an identity
	ErrAlreadyExists = errors.New("object already exists")

	// ErrUnknownField is returned when a predicate or ordering names a field the model does not declare
	ErrUnknownField = errors.New("unknown field")
)

// AccessError represents an access-direction violation at a manager boundary
type AccessError struct {
	Manager string
	Model   string
	Reason  string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("%s for %s is not accessible: %s", e.Manager, e.Model, e.Reason)
}

func (e *AccessError) Is(target error) bool {
	return target == ErrAccessDenied
}

// DoesNotExistError represents a strict lookup that matched nothing
type DoesNotExistError struct {
	Model string
}

func (e *DoesNotExistError) Error() string {
	return fmt.Sprintf("%s matching query does not exist", e.Model)
}

func (e *DoesNotExistError) Is(target error) bool {
	return target == ErrDoesNotExist
}

// MultipleObjectsError represents a strict lookup that matched more than one object
type MultipleObjectsError struct {
	Model string
	Count int
}

func (e *MultipleObjectsError) Error() string {
	return fmt.Sprintf("get returned more than one %s (found %d)", e.Model, e.Count)
}

func (e *MultipleObjectsError) Is(target error) bool {
	return target == ErrMultipleObjects
}

// NotFoundError represents a removal of an identity that is not in the store
type NotFoundError struct {
	Model string
	Key   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with pk %q not found", e.Model, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// AlreadyExistsError represents an insertion that would duplicate an identity
type AlreadyExistsError struct {
	Model string
	Key   string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s with pk %q already exists", e.Model, e.Key)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// FieldError represents a predicate or ordering over a field the model does
// not declare, or a field that cannot serve the requested operation.
type FieldError struct {
	Model string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("unknown field %q on model %s", e.Field, e.Model)
}

func (e *FieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// Helper functions for creating errors

// NewAccessError creates a new AccessError
func NewAccessError(manager, model, reason string) error {
	return &AccessError{Manager: manager, Model: model, Reason: reason}
}

// NewDoesNotExistError creates a new DoesNotExistError
func NewDoesNotExistError(model string) error {
	return &DoesNotExistError{Model: model}
}

// NewMultipleObjectsError creates a new MultipleObjectsError
func NewMultipleObjectsError(model string, count int) error {
	return &MultipleObjectsError{Model: model, Count: count}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(model, key string) error {
	return &NotFoundError{Model: model, Key: key}
}

// NewAlreadyExistsError creates a new AlreadyExistsError
func NewAlreadyExistsError(model, key string) error {
	return &AlreadyExistsError{Model: model, Key: key}
}

// NewFieldError creates a new FieldError
func NewFieldError(model, field string) error {
	return &FieldError{Model: model, Field: field}
}

// IsAccessDenied checks if an error is an access error
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsDoesNotExist checks if an error is a does-not-exist error
func IsDoesNotExist(err error) bool {
	return errors.Is(err, ErrDoesNotExist)
}

// IsMultipleObjects checks if an error is a multiple-objects error
func IsMultipleObjects(err error) bool {
	return errors.Is(err, ErrMultipleObjects)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already-exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsUnknownField checks if an error is an unknown-field error
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}
