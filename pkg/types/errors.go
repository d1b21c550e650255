package types

import "errors"

// Standard errors returned by the store, normalizer, and query surface.
var (
	// ErrNotFound is returned when an entity lookup by id finds no row.
	ErrNotFound = errors.New("not found")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrMissingFilter is returned by search and recommend when no filter
	// is supplied. It is a client error, distinct from an empty result set.
	ErrMissingFilter = errors.New("at least one of test name, standard, or domain is required")

	// ErrMissingColumns is returned when a source file lacks one of the
	// required columns. The file is skipped entirely, never partially
	// ingested.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrInvalidID is returned when an empty entity id is supplied.
	ErrInvalidID = errors.New("invalid entity id")

	// ErrEmptyName is returned when find-or-create resolution is asked to
	// resolve an empty natural key.
	ErrEmptyName = errors.New("empty natural key")
)
