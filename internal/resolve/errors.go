// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"errors"
	"fmt"
)

// Sentinels identifying which precondition of Resolve failed. Use errors.Is
// on the returned error; errors.As with *Error recovers the file details.
var (
	// ErrMalformedPath means the path does not look like <...>/<year>/<file_id>.<ext>.
	ErrMalformedPath = errors.New("malformed document path")

	// ErrDuplicatePrimary means the primary table has several rows for the
	// file, a data-integrity violation in the reference data.
	ErrDuplicatePrimary = errors.New("duplicate primary record")

	// ErrUnknownFile means the file is in neither the primary nor the link
	// table. The reference data must be fixed; the resolver cannot.
	ErrUnknownFile = errors.New("file not found in primary or link table")
)

// Error reports a document that could not be resolved.
type Error struct {
	// Kind is one of the package sentinels.
	Kind error

	Path   string
	FileID string

	// Detail adds context such as the offending year segment or row count.
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("resolve %s: %v", e.Path, e.Kind)
	if e.FileID != "" {
		msg += fmt.Sprintf(" (file_id %s)", e.FileID)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}
