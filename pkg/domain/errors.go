package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a species cannot be resolved, not even by estimation.
var ErrNotFound = errors.New("species not found")

// ErrInvalidRequest is returned when a diagram request has an invalid pressure or point count.
var ErrInvalidRequest = errors.New("invalid request")

// NotFoundError carries the identifier that could not be resolved.
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNotFound.Error(), e.Identifier)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ErrNoData is returned by a property provider that has nothing to offer for a query.
// The resolver moves on to the next tier.
var ErrNoData = errors.New("no property data")

// ErrCacheMiss is returned by a property cache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")
