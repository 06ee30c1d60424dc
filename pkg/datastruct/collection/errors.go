// Package collection holds the pieces shared by the priority collections:
// the error taxonomy, extraction modes, and the record format used for
// export and import.
package collection

import "errors"

var (
	// ErrEmpty is returned by extract, top and current operations on an empty collection.
	ErrEmpty = errors.New("collection is empty")
	// ErrNotFound is returned when an operation requires an existing key.
	ErrNotFound = errors.New("item not found")
	// ErrInvalidArgument is returned for out of range flags and options.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCorruptData is returned when imported data does not have the expected shape.
	ErrCorruptData = errors.New("corrupt data")
)
