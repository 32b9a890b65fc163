// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/pdiddy/paperscope/pkg/types"
)

func numberedPapers(n int) []types.Paper {
	papers := make([]types.Paper, n)
	for i := range papers {
		papers[i] = types.Paper{
			URL:   fmt.Sprintf("https://arxiv.org/abs/2501.%05d", i),
			Title: fmt.Sprintf("Paper %d", i),
		}
	}
	return papers
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 5, 1},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{12, 5, 3},
		{100, 10, 10},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPaginateBoundaryFlags(t *testing.T) {
	papers := numberedPapers(12)
	tests := []struct {
		page      int
		wantLen   int
		wantFirst bool
		wantLast  bool
	}{
		{1, 5, true, false},
		{2, 5, false, false},
		{3, 2, false, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.page), func(t *testing.T) {
			pv := Paginate(papers, tt.page, 5)
			if len(pv.Items) != tt.wantLen {
				t.Errorf("len(Items) = %d, want %d", len(pv.Items), tt.wantLen)
			}
			if pv.TotalPages != 3 {
				t.Errorf("TotalPages = %d, want 3", pv.TotalPages)
			}
			if pv.IsFirst != tt.wantFirst || pv.IsLast != tt.wantLast {
				t.Errorf("IsFirst/IsLast = %v/%v, want %v/%v",
					pv.IsFirst, pv.IsLast, tt.wantFirst, tt.wantLast)
			}
		})
	}
}

func TestPaginateEmptySequence(t *testing.T) {
	pv := Paginate(nil, 1, 5)
	if len(pv.Items) != 0 || pv.TotalPages != 1 || !pv.IsFirst || !pv.IsLast {
		t.Errorf("empty sequence: got %+v", pv)
	}
}

// Walking all pages front to back must reconstruct the filtered sequence
// exactly once each, in order.
func TestPaginateWalkReconstructsSequence(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 12, 23} {
		papers := numberedPapers(n)
		total := TotalPages(n, 5)
		var walked []types.Paper
		for page := 1; page <= total; page++ {
			walked = append(walked, Paginate(papers, page, 5).Items...)
		}
		if n == 0 {
			if len(walked) != 0 {
				t.Errorf("n=0: walked %d items", len(walked))
			}
			continue
		}
		if !reflect.DeepEqual(walked, papers) {
			t.Errorf("n=%d: walk did not reconstruct the sequence", n)
		}
	}
}
