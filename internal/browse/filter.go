// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package browse implements the in-memory retrieval engine behind the
// paper browsing surface: filter predicate evaluation, pagination, the
// filter/pagination state machine, and projection of papers into their
// display form. Everything here is pure computation over an immutable
// paper collection; no I/O happens during evaluation.
package browse

import (
	"strings"

	"github.com/pdiddy/paperscope/pkg/types"
)

// FilterState holds the active tag set and the normalized search term.
// The zero value means "no constraint": every paper passes.
type FilterState struct {
	// ActiveTags is the set of toggled-on tag identifiers.
	ActiveTags map[string]struct{}

	// SearchTerm is the current search term, already trimmed and
	// lower-cased. Empty means no text constraint.
	SearchTerm string
}

// NewFilterState returns an empty filter state.
func NewFilterState() FilterState {
	return FilterState{ActiveTags: make(map[string]struct{})}
}

// NormalizeTerm trims and case-folds a raw search input into the canonical
// form stored in FilterState.
func NormalizeTerm(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches reports whether a single paper passes the filter. A paper passes
// when its categories intersect the active tag set (or the set is empty),
// and the search term occurs case-insensitively in its title or abstract
// (or the term is empty). A paper with no categories can only pass while
// the tag set is empty.
func Matches(p types.Paper, f FilterState) bool {
	if len(f.ActiveTags) > 0 {
		hit := false
		for _, c := range p.Categories {
			if _, ok := f.ActiveTags[c]; ok {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.SearchTerm != "" {
		if !strings.Contains(strings.ToLower(p.Title), f.SearchTerm) &&
			!strings.Contains(strings.ToLower(p.Abstract), f.SearchTerm) {
			return false
		}
	}
	return true
}

// Evaluate applies the filter to the collection, preserving input order.
// It is deterministic: identical inputs always yield the identical output
// sequence.
func Evaluate(papers []types.Paper, f FilterState) []types.Paper {
	out := make([]types.Paper, 0, len(papers))
	for _, p := range papers {
		if Matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}
