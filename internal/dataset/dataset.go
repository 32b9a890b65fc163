// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads the two artifacts the harvester produces — the
// record collection and the facet counts object — into the typed, validated
// form the browsing engine works on. Loading is all-or-nothing per
// artifact: a collection that fails shape validation is rejected whole and
// the caller keeps its previous dataset.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/pkg/types"
)

// rawPaper mirrors types.Paper with pointers on the required fields so a
// missing key is distinguishable from a present-but-empty value. This is
// the validation gate at the boundary: records enter the core only through
// it.
type rawPaper struct {
	URL           *string   `json:"url"`
	Title         *string   `json:"title"`
	Abstract      *string   `json:"abstract"`
	Authors       *[]string `json:"authors"`
	Published     *string   `json:"published"`
	Categories    *[]string `json:"categories"`
	Applications  []string  `json:"applications"`
	Architectures []string  `json:"architectures"`
	IsRecent      bool      `json:"is_recent"`
}

// validate returns the name of the first missing required field, or "".
// Required means the key must be present with the right type; empty values
// (no authors, no categories) are legal.
func (r *rawPaper) validate() string {
	switch {
	case r.URL == nil:
		return "url"
	case r.Title == nil:
		return "title"
	case r.Abstract == nil:
		return "abstract"
	case r.Authors == nil:
		return "authors"
	case r.Published == nil:
		return "published"
	case r.Categories == nil:
		return "categories"
	}
	return ""
}

func (r *rawPaper) paper() types.Paper {
	return types.Paper{
		URL:           *r.URL,
		Title:         *r.Title,
		Abstract:      *r.Abstract,
		Authors:       *r.Authors,
		Published:     *r.Published,
		Categories:    *r.Categories,
		Applications:  r.Applications,
		Architectures: r.Architectures,
		IsRecent:      r.IsRecent,
	}
}

// LoadPapers parses and validates the record collection artifact,
// preserving input order (assumed newest-first; never re-sorted here).
// Any record missing a required field rejects the entire collection with a
// MalformedDatasetError.
func LoadPapers(raw []byte) ([]types.Paper, error) {
	var rawPapers []rawPaper
	if err := json.Unmarshal(raw, &rawPapers); err != nil {
		return nil, &MalformedDatasetError{Index: -1, Reason: "not a sequence of record objects", Err: err}
	}

	papers := make([]types.Paper, 0, len(rawPapers))
	for i := range rawPapers {
		if field := rawPapers[i].validate(); field != "" {
			return nil, &MalformedDatasetError{Index: i, Reason: fmt.Sprintf("missing required field %q", field)}
		}
		papers = append(papers, rawPapers[i].paper())
	}
	return papers, nil
}

// Dataset is one atomic snapshot of both artifacts. Snapshots are immutable
// once built; a reload produces a new Dataset rather than mutating one in
// place, so sessions holding the old snapshot stay consistent.
type Dataset struct {
	Papers []types.Paper
	Facets *FacetIndex
}

// LoadFromFiles fetches both artifacts from the local filesystem. A papers
// artifact that cannot be read or validated fails the load (transport or
// malformed error); a missing or malformed counts artifact degrades to zero
// counts with a warning, per the facet index contract.
func LoadFromFiles(papersPath, countsPath string, logger *zap.Logger) (*Dataset, error) {
	rawPapers, err := os.ReadFile(papersPath)
	if err != nil {
		return nil, &LoadTransportError{Path: papersPath, Err: err}
	}
	papers, err := LoadPapers(rawPapers)
	if err != nil {
		return nil, err
	}

	facets := NewFacetIndex()
	rawCounts, err := os.ReadFile(countsPath)
	if err != nil {
		logger.Warn("facet counts artifact unavailable, degrading to zero counts",
			zap.String("path", countsPath), zap.Error(err))
	} else if fi, loadErr := LoadCounts(rawCounts); loadErr != nil {
		logger.Warn("facet counts artifact malformed, degrading to zero counts",
			zap.String("path", countsPath), zap.Error(loadErr))
	} else {
		facets = fi
	}

	return &Dataset{Papers: papers, Facets: facets}, nil
}
