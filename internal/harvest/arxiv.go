// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest queries the arXiv API for new papers, merges them into
// the SQLite archive, and exports the two JSON artifacts the browsing
// server consumes.
package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/internal/httputil"
	"github.com/pdiddy/paperscope/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// dateLayout is the publication date form stored on papers; it sorts
// lexically in date order.
const dateLayout = "2006-01-02"

// Client queries the arXiv Atom API.
type Client struct {
	HTTP   *http.Client
	Cfg    types.HarvestConfig
	Logger *zap.Logger
}

// Search runs one AND-combined term query against arXiv, newest submissions
// first, and returns the papers published on or after startDate. Categories
// are left empty; the caller assigns the category that owns the query.
func (c *Client) Search(ctx context.Context, terms []string, startDate string) ([]types.Paper, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("empty arXiv query")
	}

	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = fmt.Sprintf("%q", strings.TrimSpace(t))
	}
	query := "all:" + strings.Join(quoted, " AND ")

	maxResults := c.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}

	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0, c.Logger)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var papers []types.Paper
	for _, entry := range feed.Entries {
		published, parseErr := time.Parse(time.RFC3339, strings.TrimSpace(entry.Published))
		if parseErr != nil {
			c.Logger.Warn("skipping entry with unparseable date",
				zap.String("id", entry.ID), zap.Error(parseErr))
			continue
		}
		day := published.Format(dateLayout)
		if startDate != "" && day < startDate {
			continue
		}

		p := types.Paper{
			URL:        strings.TrimSpace(entry.ID),
			Title:      strings.Join(strings.Fields(entry.Title), " "),
			Abstract:   strings.TrimSpace(entry.Summary),
			Published:  day,
			Categories: []string{},
		}
		for _, a := range entry.Authors {
			p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
		}
		papers = append(papers, p)
	}
	return papers, nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
