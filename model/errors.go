// Package model provides the class symbol model used for member completion:
// immutable class and member descriptors, the member resolver, and a
// memoizing registry that builds descriptors from raw class metadata.
package model

import "errors"

// Sentinel errors for common conditions.
var (
	// ErrClassNotFound indicates the reader has no class with the requested name.
	ErrClassNotFound = errors.New("model: class not found")

	// ErrCyclicHierarchy indicates a class is its own ancestor in the raw data.
	ErrCyclicHierarchy = errors.New("model: cyclic class hierarchy")

	// ErrNameMismatch indicates the reader returned a class under a different name.
	ErrNameMismatch = errors.New("model: reader returned a different class")
)
