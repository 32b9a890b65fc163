// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pdiddy/paperscope/pkg/types"
)

// mapLabeler resolves labels from a plain map, falling back to the raw id
// the way the facet index does.
type mapLabeler map[string]string

func (m mapLabeler) LabelFor(id string) string {
	if label, ok := m[id]; ok {
		return label
	}
	return id
}

var testLabels = mapLabeler{
	"ocean":             "🌊 Ocean",
	"ship_trajectories": "🚢 Ship trajectories",
}

func TestProjectTruncatesLongAbstract(t *testing.T) {
	p := types.Paper{Abstract: strings.Repeat("x", 250)}
	got := Project(p, testLabels)
	want := strings.Repeat("x", 200) + "…"
	if got.AbstractPreview != want {
		t.Errorf("AbstractPreview length = %d, want 200 chars plus ellipsis",
			utf8.RuneCountInString(got.AbstractPreview))
	}
}

func TestProjectShortAbstractKeptVerbatim(t *testing.T) {
	for _, abstract := range []string{"", "short", strings.Repeat("x", 200)} {
		got := Project(types.Paper{Abstract: abstract}, testLabels)
		if got.AbstractPreview != abstract {
			t.Errorf("abstract %q was altered to %q", abstract, got.AbstractPreview)
		}
	}
}

func TestProjectTruncatesByRunesNotBytes(t *testing.T) {
	p := types.Paper{Abstract: strings.Repeat("é", 250)}
	got := Project(p, testLabels)
	if utf8.RuneCountInString(got.AbstractPreview) != 201 { // 200 + ellipsis
		t.Errorf("rune count = %d, want 201", utf8.RuneCountInString(got.AbstractPreview))
	}
	if !utf8.ValidString(got.AbstractPreview) {
		t.Error("truncation split a multi-byte rune")
	}
}

func TestProjectPrimaryAuthor(t *testing.T) {
	tests := []struct {
		name    string
		authors []string
		want    string
	}{
		{"first of many", []string{"A. First", "B. Second"}, "A. First"},
		{"single", []string{"Solo"}, "Solo"},
		{"empty", nil, UnknownAuthor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Project(types.Paper{Authors: tt.authors}, testLabels)
			if got.PrimaryAuthor != tt.want {
				t.Errorf("PrimaryAuthor = %q, want %q", got.PrimaryAuthor, tt.want)
			}
		})
	}
}

func TestProjectResolvesTagLabels(t *testing.T) {
	p := types.Paper{Categories: []string{"ocean", "mystery_tag"}}
	got := Project(p, testLabels)
	want := []types.LabeledTag{
		{ID: "ocean", Label: "🌊 Ocean"},
		{ID: "mystery_tag", Label: "mystery_tag"},
	}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("Tags = %v, want %v", got.Tags, want)
	}
}

func TestProjectIsIdempotentAndNonMutating(t *testing.T) {
	p := types.Paper{
		Title:      "Ocean currents via ML",
		Abstract:   strings.Repeat("y", 300),
		Authors:    []string{"A. Current"},
		Categories: []string{"ocean"},
	}
	before := p
	first := Project(p, testLabels)
	second := Project(p, testLabels)
	if !reflect.DeepEqual(first, second) {
		t.Error("two projections of the same paper differ")
	}
	if !reflect.DeepEqual(p, before) {
		t.Error("Project mutated the paper")
	}
}
