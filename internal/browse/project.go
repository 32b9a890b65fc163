// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package browse

import "github.com/pdiddy/paperscope/pkg/types"

const (
	// AbstractBudget is the maximum number of characters of abstract shown
	// in a presentation record.
	AbstractBudget = 200

	// ellipsis is appended only when truncation actually removed text.
	ellipsis = "…"

	// UnknownAuthor is shown for papers with an empty author list.
	UnknownAuthor = "Unknown author"
)

// Labeler resolves a tag identifier to its display label. Unknown
// identifiers come back unchanged.
type Labeler interface {
	LabelFor(id string) string
}

// Project maps a paper to its presentation record: truncated abstract,
// primary author, and tag labels resolved through the labeler. The mapping
// is idempotent and never mutates the paper.
func Project(p types.Paper, labels Labeler) types.PresentationRecord {
	author := UnknownAuthor
	if len(p.Authors) > 0 {
		author = p.Authors[0]
	}

	tags := make([]types.LabeledTag, 0, len(p.Categories))
	for _, c := range p.Categories {
		tags = append(tags, types.LabeledTag{ID: c, Label: labels.LabelFor(c)})
	}

	return types.PresentationRecord{
		URL:             p.URL,
		Title:           p.Title,
		AbstractPreview: truncate(p.Abstract, AbstractBudget),
		PrimaryAuthor:   author,
		Published:       p.Published,
		Tags:            tags,
		Applications:    p.Applications,
		Architectures:   p.Architectures,
		IsRecent:        p.IsRecent,
	}
}

// truncate cuts s to at most budget characters (runes, so multi-byte text
// is never split) and marks the cut with an ellipsis.
func truncate(s string, budget int) string {
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return string(runes[:budget]) + ellipsis
}
