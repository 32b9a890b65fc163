// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import "fmt"

// MalformedDatasetError reports that the record collection artifact failed
// shape validation. The load is rejected as a whole; the caller keeps
// whatever dataset it had before.
type MalformedDatasetError struct {
	// Index is the position of the offending record, or -1 when the
	// artifact is not a JSON array at all.
	Index int

	// Reason describes what was wrong (e.g. a missing required field).
	Reason string

	// Err is the underlying decode error, if any.
	Err error
}

func (e *MalformedDatasetError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed dataset: %s", e.Reason)
	}
	return fmt.Sprintf("malformed dataset: record %d: %s", e.Index, e.Reason)
}

func (e *MalformedDatasetError) Unwrap() error { return e.Err }

// FacetDataMissingError reports that the facet counts artifact is absent or
// unparseable. Callers degrade to zero counts instead of failing the load.
type FacetDataMissingError struct {
	Path string
	Err  error
}

func (e *FacetDataMissingError) Error() string {
	return fmt.Sprintf("facet counts unavailable at %s: %v", e.Path, e.Err)
}

func (e *FacetDataMissingError) Unwrap() error { return e.Err }

// LoadTransportError reports that an artifact could not be fetched at all.
type LoadTransportError struct {
	Path string
	Err  error
}

func (e *LoadTransportError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Path, e.Err)
}

func (e *LoadTransportError) Unwrap() error { return e.Err }
