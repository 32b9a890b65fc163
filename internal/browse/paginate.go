// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import "github.com/pdiddy/paperscope/pkg/types"

// DefaultPageSize is used when a session is created without an explicit
// page size.
const DefaultPageSize = 10

// PageView is one page of a filtered sequence. IsFirst and IsLast let the
// caller disable navigation at the boundaries instead of wrapping or
// clamping.
type PageView struct {
	Items      []types.Paper
	Page       int
	TotalPages int
	IsFirst    bool
	IsLast     bool
}

// TotalPages returns the number of pages a sequence of length n occupies at
// the given page size. An empty sequence still has one (empty) page.
func TotalPages(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate slices the filtered sequence into the requested page. The page
// number must already satisfy 1 <= page <= TotalPages; the state machine
// maintains that invariant, so Paginate does not clamp.
func Paginate(filtered []types.Paper, page, pageSize int) PageView {
	total := TotalPages(len(filtered), pageSize)

	start := (page - 1) * pageSize
	end := page * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageView{
		Items:      filtered[start:end],
		Page:       page,
		TotalPages: total,
		IsFirst:    page == 1,
		IsLast:     page == total,
	}
}
