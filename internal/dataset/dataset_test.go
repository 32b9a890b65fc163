// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

const validCollection = `[
  {
    "url": "https://arxiv.org/abs/2501.00001",
    "title": "Ocean currents via ML",
    "abstract": "Learning surface currents from drifter tracks.",
    "authors": ["A. Current", "B. Drift"],
    "published": "2025-01-03",
    "categories": ["ocean"],
    "applications": ["forecasting"],
    "is_recent": true
  },
  {
    "url": "https://arxiv.org/abs/2412.09999",
    "title": "Ship routes",
    "abstract": "Trajectory clustering for AIS data.",
    "authors": [],
    "published": "2024-12-20",
    "categories": ["ship_trajectories", "exotic_tag"]
  }
]`

func TestLoadPapersValid(t *testing.T) {
	papers, err := LoadPapers([]byte(validCollection))
	if err != nil {
		t.Fatalf("LoadPapers() error = %v", err)
	}
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}
	// Input order preserved, no re-sorting.
	if papers[0].URL != "https://arxiv.org/abs/2501.00001" {
		t.Errorf("order not preserved: first = %s", papers[0].URL)
	}
	if !papers[0].IsRecent || papers[1].IsRecent {
		t.Error("is_recent passthrough wrong")
	}
	if len(papers[1].Authors) != 0 {
		t.Errorf("empty author list mangled: %v", papers[1].Authors)
	}
	// Unrecognized tags are passthrough labels, not an error.
	if papers[1].Categories[1] != "exotic_tag" {
		t.Errorf("categories = %v", papers[1].Categories)
	}
}

func TestLoadPapersMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not an array", `{"url": "x"}`},
		{"not json", `nonsense`},
		{"missing title", `[{"url":"u","abstract":"a","authors":[],"published":"p","categories":[]}]`},
		{"missing url", `[{"title":"t","abstract":"a","authors":[],"published":"p","categories":[]}]`},
		{"missing abstract", `[{"url":"u","title":"t","authors":[],"published":"p","categories":[]}]`},
		{"missing authors", `[{"url":"u","title":"t","abstract":"a","published":"p","categories":[]}]`},
		{"missing published", `[{"url":"u","title":"t","abstract":"a","authors":[],"categories":[]}]`},
		{"missing categories", `[{"url":"u","title":"t","abstract":"a","authors":[],"published":"p"}]`},
		{"wrong field type", `[{"url":"u","title":42,"abstract":"a","authors":[],"published":"p","categories":[]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			papers, err := LoadPapers([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected error, got none")
			}
			var malformed *MalformedDatasetError
			if !errors.As(err, &malformed) {
				t.Errorf("error type = %T, want MalformedDatasetError", err)
			}
			if papers != nil {
				t.Error("rejected load still returned papers")
			}
		})
	}
}

func TestLoadPapersRejectsWholeCollection(t *testing.T) {
	// One bad record in the middle rejects everything: no partial loads.
	raw := `[
	  {"url":"u1","title":"t1","abstract":"a","authors":[],"published":"p","categories":[]},
	  {"url":"u2","abstract":"a","authors":[],"published":"p","categories":[]},
	  {"url":"u3","title":"t3","abstract":"a","authors":[],"published":"p","categories":[]}
	]`
	papers, err := LoadPapers([]byte(raw))
	if err == nil || papers != nil {
		t.Fatalf("partial load accepted: papers=%v err=%v", papers, err)
	}
	var malformed *MalformedDatasetError
	if !errors.As(err, &malformed) {
		t.Fatalf("error type = %T", err)
	}
	if malformed.Index != 1 {
		t.Errorf("Index = %d, want 1", malformed.Index)
	}
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	papersPath := filepath.Join(dir, "papers.json")
	countsPath := filepath.Join(dir, "category_counts.json")
	if err := os.WriteFile(papersPath, []byte(validCollection), 0o644); err != nil {
		t.Fatal(err)
	}
	counts := `{"category_counts":{"ocean":1,"ship_trajectories":1},"scrape_date":"2025-01-04","new_papers":2}`
	if err := os.WriteFile(countsPath, []byte(counts), 0o644); err != nil {
		t.Fatal(err)
	}

	ds, err := LoadFromFiles(papersPath, countsPath, zap.NewNop())
	if err != nil {
		t.Fatalf("LoadFromFiles() error = %v", err)
	}
	if len(ds.Papers) != 2 {
		t.Errorf("papers = %d, want 2", len(ds.Papers))
	}
	if ds.Facets.CountFor("ocean") != 1 || ds.Facets.ScrapeDate() != "2025-01-04" || ds.Facets.NewPapers() != 2 {
		t.Errorf("facet index wrong: %+v", ds.Facets)
	}
}

func TestLoadFromFilesMissingPapersIsTransportError(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadFromFiles(filepath.Join(dir, "nope.json"), filepath.Join(dir, "counts.json"), zap.NewNop())
	var transport *LoadTransportError
	if !errors.As(err, &transport) {
		t.Errorf("error = %v (%T), want LoadTransportError", err, err)
	}
}

func TestLoadFromFilesDegradesWithoutCounts(t *testing.T) {
	dir := t.TempDir()
	papersPath := filepath.Join(dir, "papers.json")
	if err := os.WriteFile(papersPath, []byte(validCollection), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		counts string // empty = no file at all
	}{
		{"counts file absent", ""},
		{"counts file malformed", `{"category_counts": "not a map"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countsPath := filepath.Join(dir, tt.name+".json")
			if tt.counts != "" {
				if err := os.WriteFile(countsPath, []byte(tt.counts), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			ds, err := LoadFromFiles(papersPath, countsPath, zap.NewNop())
			if err != nil {
				t.Fatalf("degraded load failed: %v", err)
			}
			if ds.Facets.CountFor("ocean") != 0 {
				t.Error("expected zero counts in degraded mode")
			}
		})
	}
}
