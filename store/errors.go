package store

import "errors"

// Common store errors.
var (
	// ErrWrite is returned when a batch cannot be applied. The store is left unchanged.
	ErrWrite = errors.New("store write failed")

	// ErrUnsupportedLiteral is returned when a Go value has no literal mapping.
	ErrUnsupportedLiteral = errors.New("unsupported literal value")
)
