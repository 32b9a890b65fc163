// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"encoding/json"

	"github.com/pdiddy/paperscope/pkg/types"
)

// TagDefinition is one entry of the compiled-in facet registry: the tag
// identifier papers carry and the label the surface displays for it.
type TagDefinition struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// registry is the fixed set of facets offered as filters. The registry, not
// the counts artifact, is authoritative: counts for tags outside this list
// are ignored for rendering.
var registry = []TagDefinition{
	{ID: "ocean", Label: "🌊 Ocean"},
	{ID: "ship_trajectories", Label: "🚢 Ship trajectories"},
	{ID: "weather_climate", Label: "🌤 Weather & climate"},
	{ID: "marine_ecology", Label: "🐠 Marine ecology"},
	{ID: "underwater_acoustics", Label: "🔊 Underwater acoustics"},
	{ID: "remote_sensing", Label: "🛰 Remote sensing"},
}

// Tags returns the registry in display order.
func Tags() []TagDefinition {
	out := make([]TagDefinition, len(registry))
	copy(out, registry)
	return out
}

// KnownTag reports whether id is in the registry.
func KnownTag(id string) bool {
	for _, t := range registry {
		if t.ID == id {
			return true
		}
	}
	return false
}

// FacetIndex exposes, per tag, the display label and the occurrence count
// from the facet counts artifact, plus the harvest-run metadata.
type FacetIndex struct {
	counts     map[string]int
	scrapeDate string
	newPapers  int
}

// NewFacetIndex returns an index with all counts zero and no run metadata,
// the degraded state used when the counts artifact is unavailable.
func NewFacetIndex() *FacetIndex {
	return &FacetIndex{counts: make(map[string]int)}
}

// LoadCounts parses the facet counts artifact. Unknown tags in the payload
// are retained (CountFor still answers for them) but never offered as
// filters; a malformed payload returns a FacetDataMissingError and no index.
func LoadCounts(raw []byte) (*FacetIndex, error) {
	var summary types.FacetSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, &FacetDataMissingError{Err: err}
	}
	fi := NewFacetIndex()
	for id, n := range summary.CategoryCounts {
		if n < 0 {
			n = 0
		}
		fi.counts[id] = n
	}
	fi.scrapeDate = summary.ScrapeDate
	fi.newPapers = summary.NewPapers
	return fi, nil
}

// CountFor returns the occurrence count for a tag; absent tags count zero.
func (fi *FacetIndex) CountFor(id string) int {
	return fi.counts[id]
}

// LabelFor returns the registry label for a known tag, or the identifier
// unchanged for forward-compatible unknown tags.
func (fi *FacetIndex) LabelFor(id string) string {
	for _, t := range registry {
		if t.ID == id {
			return t.Label
		}
	}
	return id
}

// ScrapeDate returns the date of the harvest run that produced the dataset.
func (fi *FacetIndex) ScrapeDate() string { return fi.scrapeDate }

// NewPapers returns how many papers the run added.
func (fi *FacetIndex) NewPapers() int { return fi.newPapers }

// Facet is a registry entry joined with its current count, ready for the
// filter sidebar.
type Facet struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Facets returns the offered filters in registry order with their counts.
func (fi *FacetIndex) Facets() []Facet {
	out := make([]Facet, 0, len(registry))
	for _, t := range registry {
		out = append(out, Facet{ID: t.ID, Label: t.Label, Count: fi.counts[t.ID]})
	}
	return out
}
