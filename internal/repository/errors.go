// Package repository defines errors shared by all store implementations.
package repository

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a referenced record is absent from the store.
type NotFoundError struct {
	Resource string
	Key      string
	Value    string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with %s %s not found", e.Resource, e.Key, e.Value)
}

// ConflictError reports that a record with the same unique key already
// exists in the store.
type ConflictError struct {
	Resource string
	Key      string
	Value    string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %s already exists", e.Resource, e.Key, e.Value)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
