// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/paperscope/pkg/types"
)

const (
	papersArtifact = "papers.json"
	countsArtifact = "category_counts.json"

	defaultStartDate     = "2024-01-01"
	defaultRecencyWindow = 7 * 24 * time.Hour
)

// Summary holds the counts from one harvest run.
type Summary struct {
	Fetched int // results returned by arXiv across all queries
	Added   int // papers new to the archive
	Total   int // archive size after the merge
}

// Run executes one harvest: query arXiv per category, merge into the
// archive, and export both artifacts. startOverride forces the start date
// ("YYYY-MM-DD" or relative "-7d"); when empty the run resumes from the
// archive's latest publication date with a one-day overlap buffer so
// late-arriving papers are not missed. Progress goes to w.
func Run(ctx context.Context, cfg types.HarvestConfig, startOverride string, logger *zap.Logger, w io.Writer) (Summary, error) {
	queries, err := LoadQueries(cfg.QueriesPath)
	if err != nil {
		return Summary{}, err
	}

	archive, err := OpenArchive(cfg.ArchivePath)
	if err != nil {
		return Summary{}, err
	}
	defer archive.Close()

	latest, err := archive.LatestPublished(ctx)
	if err != nil {
		return Summary{}, err
	}

	fallback := cfg.DefaultStartDate
	if fallback == "" {
		fallback = defaultStartDate
	}
	startDate, err := ResolveStartDate(startOverride, latest, fallback, time.Now())
	if err != nil {
		return Summary{}, err
	}
	logger.Info("harvesting", zap.String("start_date", startDate))
	fmt.Fprintf(w, "harvesting from %s\n", startDate)

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &Client{
		HTTP:   &http.Client{Timeout: timeout},
		Cfg:    cfg,
		Logger: logger,
	}

	var summary Summary
	var harvested []types.Paper
	for _, category := range queries.CategoryIDs() {
		for _, terms := range queries.Categories[category].Queries {
			select {
			case <-ctx.Done():
				return summary, ctx.Err()
			default:
			}

			papers, err := client.Search(ctx, terms, startDate)
			if err != nil {
				// One failing query does not abort the run; the next run's
				// overlap buffer will pick up what this one missed.
				logger.Warn("query failed",
					zap.String("category", category),
					zap.Strings("terms", terms),
					zap.Error(err))
				fmt.Fprintf(w, "warning: %s query failed: %v\n", category, err)
				continue
			}
			for i := range papers {
				papers[i].Categories = []string{category}
			}
			summary.Fetched += len(papers)
			harvested = append(harvested, papers...)
		}
		fmt.Fprintf(w, "searched %s\n", category)
	}

	added, err := archive.Merge(ctx, harvested)
	if err != nil {
		return summary, err
	}
	summary.Added = added

	total, err := archive.Count(ctx)
	if err != nil {
		return summary, err
	}
	summary.Total = total

	window := cfg.RecencyWindow
	if window <= 0 {
		window = defaultRecencyWindow
	}
	if err := ExportArtifacts(ctx, archive, cfg.OutputDir, window, added, time.Now()); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "fetched: %d, added: %d, archive total: %d\n",
		summary.Fetched, summary.Added, summary.Total)
	return summary, nil
}

// ResolveStartDate picks the date harvesting starts from. Priority:
// explicit override (absolute YYYY-MM-DD or relative "-7d"), then the
// archive's latest publication date minus a one-day buffer, then the
// configured fallback.
func ResolveStartDate(override, latest, fallback string, now time.Time) (string, error) {
	if override != "" {
		if strings.HasPrefix(override, "-") && strings.HasSuffix(override, "d") {
			days, err := strconv.Atoi(override[1 : len(override)-1])
			if err != nil || days < 0 {
				return "", fmt.Errorf("invalid relative start date %q", override)
			}
			return now.AddDate(0, 0, -days).Format(dateLayout), nil
		}
		if _, err := time.Parse(dateLayout, override); err != nil {
			return "", fmt.Errorf("invalid start date %q: %w", override, err)
		}
		return override, nil
	}

	if latest != "" {
		t, err := time.Parse(dateLayout, latest)
		if err != nil {
			return "", fmt.Errorf("archive holds invalid publication date %q: %w", latest, err)
		}
		return t.AddDate(0, 0, -1).Format(dateLayout), nil
	}

	return fallback, nil
}

// ExportArtifacts writes the record collection and facet counts artifacts
// from the archive. Each file is written to a temp path and renamed into
// place, so the server never observes a half-written artifact.
func ExportArtifacts(ctx context.Context, archive *Archive, outputDir string, recencyWindow time.Duration, newPapers int, now time.Time) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	papers, err := archive.All(ctx)
	if err != nil {
		return err
	}
	if papers == nil {
		papers = []types.Paper{} // empty archive still exports a valid sequence
	}

	recentCutoff := now.Add(-recencyWindow).Format(dateLayout)
	counts := make(map[string]int)
	for i := range papers {
		papers[i].IsRecent = papers[i].Published >= recentCutoff
		for _, c := range papers[i].Categories {
			counts[c]++
		}
	}

	if err := writeJSONAtomic(filepath.Join(outputDir, papersArtifact), papers); err != nil {
		return err
	}

	summary := types.FacetSummary{
		CategoryCounts: counts,
		ScrapeDate:     now.Format(dateLayout),
		NewPapers:      newPapers,
	}
	return writeJSONAtomic(filepath.Join(outputDir, countsArtifact), summary)
}

// writeJSONAtomic marshals v and atomically replaces the file at path.
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
