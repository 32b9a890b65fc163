// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"errors"
	"testing"
)

func TestLoadCounts(t *testing.T) {
	raw := `{
	  "category_counts": {"ocean": 12, "ship_trajectories": 4, "never_heard_of_it": 9},
	  "scrape_date": "2025-01-04",
	  "new_papers": 3
	}`
	fi, err := LoadCounts([]byte(raw))
	if err != nil {
		t.Fatalf("LoadCounts() error = %v", err)
	}
	if fi.CountFor("ocean") != 12 || fi.CountFor("ship_trajectories") != 4 {
		t.Error("known tag counts wrong")
	}
	if fi.CountFor("weather_climate") != 0 {
		t.Error("absent tag should count zero")
	}
	if fi.ScrapeDate() != "2025-01-04" || fi.NewPapers() != 3 {
		t.Errorf("metadata: date=%q new=%d", fi.ScrapeDate(), fi.NewPapers())
	}
}

func TestLoadCountsMalformed(t *testing.T) {
	_, err := LoadCounts([]byte(`[1,2,3]`))
	var missing *FacetDataMissingError
	if !errors.As(err, &missing) {
		t.Errorf("error = %v (%T), want FacetDataMissingError", err, err)
	}
}

func TestLoadCountsClampsNegative(t *testing.T) {
	fi, err := LoadCounts([]byte(`{"category_counts": {"ocean": -5}}`))
	if err != nil {
		t.Fatal(err)
	}
	if fi.CountFor("ocean") != 0 {
		t.Errorf("CountFor = %d, want 0", fi.CountFor("ocean"))
	}
}

func TestFacetsUnknownTagsNotOffered(t *testing.T) {
	fi, err := LoadCounts([]byte(`{"category_counts": {"ocean": 2, "never_heard_of_it": 9}}`))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range fi.Facets() {
		if f.ID == "never_heard_of_it" {
			t.Fatal("unknown tag offered as a filter")
		}
	}
	if got := len(fi.Facets()); got != len(Tags()) {
		t.Errorf("offered facets = %d, want %d", got, len(Tags()))
	}
}

func TestLabelFor(t *testing.T) {
	fi := NewFacetIndex()
	tests := []struct {
		id   string
		want string
	}{
		{"ocean", "🌊 Ocean"},
		{"ship_trajectories", "🚢 Ship trajectories"},
		{"brand_new_tag", "brand_new_tag"}, // graceful passthrough
	}
	for _, tt := range tests {
		if got := fi.LabelFor(tt.id); got != tt.want {
			t.Errorf("LabelFor(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestKnownTag(t *testing.T) {
	if !KnownTag("ocean") || KnownTag("not_a_tag") {
		t.Error("KnownTag misclassified")
	}
}
