// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"sort"

	"github.com/pdiddy/paperscope/pkg/types"
)

// Session is the filter/pagination state machine for one browsing session.
// It owns the composite (filter state, page) pair and caches the filtered
// sequence, recomputing it on every filter transition. The paper collection
// is immutable for the session's lifetime, so the visible view is a pure
// function of the current state: replaying a session from any captured
// state yields the same view.
//
// A Session is not safe for concurrent use; callers serialize events onto
// it (one logical actor, one event at a time).
type Session struct {
	papers   []types.Paper
	labels   Labeler
	pageSize int

	filter   FilterState
	page     int
	filtered []types.Paper
}

// SessionView is the full renderable state of a session: the projected
// records of the current page plus everything the surface needs to draw
// filter and navigation controls.
type SessionView struct {
	Items        []types.PresentationRecord `json:"items"`
	Page         int                        `json:"page"`
	TotalPages   int                        `json:"total_pages"`
	IsFirst      bool                       `json:"is_first"`
	IsLast       bool                       `json:"is_last"`
	TotalMatches int                        `json:"total_matches"`
	ActiveTags   []string                   `json:"active_tags"`
	SearchTerm   string                     `json:"search_term"`
}

// NewSession creates a session over an already-loaded paper collection.
// The collection is assumed deduplicated and newest-first; the session
// never re-sorts it. pageSize <= 0 selects DefaultPageSize.
func NewSession(papers []types.Paper, labels Labeler, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s := &Session{
		papers:   papers,
		labels:   labels,
		pageSize: pageSize,
		filter:   NewFilterState(),
		page:     1,
	}
	s.filtered = Evaluate(s.papers, s.filter)
	return s
}

// ToggleTag flips membership of the tag in the active set and resets the
// session to page 1 of the recomputed result set.
func (s *Session) ToggleTag(id string) {
	if _, ok := s.filter.ActiveTags[id]; ok {
		delete(s.filter.ActiveTags, id)
	} else {
		s.filter.ActiveTags[id] = struct{}{}
	}
	s.resetPage()
}

// SetSearchTerm replaces the search term (trimmed and case-folded) and
// resets the session to page 1 of the recomputed result set.
func (s *Session) SetSearchTerm(raw string) {
	s.filter.SearchTerm = NormalizeTerm(raw)
	s.resetPage()
}

// AdvancePage moves the current page by delta when the target stays within
// [1, TotalPages]. Out-of-range advancement is a no-op; the return value
// reports whether the page changed.
func (s *Session) AdvancePage(delta int) bool {
	target := s.page + delta
	if target < 1 || target > TotalPages(len(s.filtered), s.pageSize) {
		return false
	}
	s.page = target
	return true
}

// resetPage recomputes the filtered sequence and returns to page 1, so a
// shrinking result set can never strand the session on an out-of-range
// page.
func (s *Session) resetPage() {
	s.filtered = Evaluate(s.papers, s.filter)
	s.page = 1
}

// Page returns the current 1-based page number.
func (s *Session) Page() int { return s.page }

// View projects the current page into its renderable form.
func (s *Session) View() SessionView {
	pv := Paginate(s.filtered, s.page, s.pageSize)

	items := make([]types.PresentationRecord, 0, len(pv.Items))
	for _, p := range pv.Items {
		items = append(items, Project(p, s.labels))
	}

	active := make([]string, 0, len(s.filter.ActiveTags))
	for id := range s.filter.ActiveTags {
		active = append(active, id)
	}
	sort.Strings(active)

	return SessionView{
		Items:        items,
		Page:         pv.Page,
		TotalPages:   pv.TotalPages,
		IsFirst:      pv.IsFirst,
		IsLast:       pv.IsLast,
		TotalMatches: len(s.filtered),
		ActiveTags:   active,
		SearchTerm:   s.filter.SearchTerm,
	}
}
