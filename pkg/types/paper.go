// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shapes shared between the harvester, the
// dataset loader, and the browsing engine.
package types

// Paper holds the harvested metadata for one arXiv paper. Papers are
// produced by the harvest stage, exported newest-first into the record
// collection artifact, and loaded read-only for the life of a browsing
// session. The URL is the natural key; the harvester deduplicates on it,
// so a loaded collection never contains two papers with the same URL.
type Paper struct {
	// URL is the arXiv entry URL and the stable identifier across runs.
	URL string `json:"url" yaml:"url"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the paper abstract, untruncated.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Authors lists the paper authors in source order. May be empty.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the publication date in YYYY-MM-DD form, which sorts
	// lexically in date order.
	Published string `json:"published" yaml:"published"`

	// Categories holds the facet tag identifiers assigned to the paper.
	Categories []string `json:"categories" yaml:"categories"`

	// Applications and Architectures are free-text labels assigned by an
	// upstream classifier. Carried through unmodified.
	Applications  []string `json:"applications,omitempty" yaml:"applications,omitempty"`
	Architectures []string `json:"architectures,omitempty" yaml:"architectures,omitempty"`

	// IsRecent marks papers published within the harvester's recency
	// window at export time.
	IsRecent bool `json:"is_recent,omitempty" yaml:"is_recent,omitempty"`
}

// FacetSummary is the facet counts artifact: per-tag occurrence counts plus
// metadata about the harvest run that produced the dataset.
type FacetSummary struct {
	// CategoryCounts maps tag identifier to occurrence count. A tag absent
	// from the map has count zero.
	CategoryCounts map[string]int `json:"category_counts"`

	// ScrapeDate is the date of the harvest run, YYYY-MM-DD.
	ScrapeDate string `json:"scrape_date"`

	// NewPapers is the number of papers added since the previous run.
	NewPapers int `json:"new_papers"`
}

// LabeledTag pairs a tag identifier with its display label.
type LabeledTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PresentationRecord is the projected, display-ready form of a Paper:
// truncated abstract, primary author, and resolved tag labels.
type PresentationRecord struct {
	URL             string       `json:"url"`
	Title           string       `json:"title"`
	AbstractPreview string       `json:"abstract_preview"`
	PrimaryAuthor   string       `json:"primary_author"`
	Published       string       `json:"published"`
	Tags            []LabeledTag `json:"tags"`
	Applications    []string     `json:"applications,omitempty"`
	Architectures   []string     `json:"architectures,omitempty"`
	IsRecent        bool         `json:"is_recent,omitempty"`
}
