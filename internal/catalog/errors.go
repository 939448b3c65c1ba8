package catalog

import "errors"

// Catalog construction errors. These indicate bugs in catalog definition
// (built-in or file-based), not environmental failures, so callers should
// treat them as fatal.
var (
	// ErrEmptyCatalog is returned when a catalog defines no targets.
	ErrEmptyCatalog = errors.New("catalog defines no targets")

	// ErrMissingLabel is returned when a target has no label.
	ErrMissingLabel = errors.New("target has no label")

	// ErrMissingURL is returned when a target has no URL.
	ErrMissingURL = errors.New("target has no URL")

	// ErrDuplicateLabel is returned when two targets share a label.
	// Labels key the results map; duplicates would silently overwrite.
	ErrDuplicateLabel = errors.New("duplicate target label")
)
