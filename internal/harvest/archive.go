// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package harvest

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paperscope/pkg/types"
)

// Archive is the versioned dataset: a SQLite database holding every paper
// ever harvested, keyed by URL. Each harvest run merges into it and the
// JSON artifacts are exported from it, so a corrupted or deleted artifact
// never loses data.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database at path, creating the
// parent directory and schema as needed.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	a := &Archive{db: db}
	if err := a.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return a, nil
}

// Close releases the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS papers (
			url TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			abstract TEXT NOT NULL,
			authors TEXT NOT NULL,
			published TEXT NOT NULL,
			categories TEXT NOT NULL,
			applications TEXT,
			architectures TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_papers_published ON papers(published)`,
	}
	for _, stmt := range statements {
		if _, err := a.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Count returns the number of archived papers.
func (a *Archive) Count(ctx context.Context) (int, error) {
	var n int
	if err := a.db.QueryRowContext(ctx, `SELECT count(*) FROM papers`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting papers: %w", err)
	}
	return n, nil
}

// LatestPublished returns the most recent publication date in the archive,
// or "" when the archive is empty.
func (a *Archive) LatestPublished(ctx context.Context) (string, error) {
	var latest sql.NullString
	err := a.db.QueryRowContext(ctx, `SELECT max(published) FROM papers`).Scan(&latest)
	if err != nil {
		return "", fmt.Errorf("querying latest publication date: %w", err)
	}
	if !latest.Valid {
		return "", nil
	}
	return latest.String, nil
}

// Merge upserts harvested papers into the archive in one transaction. A new
// URL is inserted; an existing one gets the incoming categories unioned
// into its stored set. Returns the number of papers that were new.
func (a *Archive) Merge(ctx context.Context, papers []types.Paper) (int, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	added := 0
	for _, p := range papers {
		var storedCategories string
		err := tx.QueryRowContext(ctx,
			`SELECT categories FROM papers WHERE url = ?`, p.URL,
		).Scan(&storedCategories)

		switch {
		case err == sql.ErrNoRows:
			authorsJSON, _ := json.Marshal(p.Authors)
			categoriesJSON, _ := json.Marshal(p.Categories)
			applicationsJSON, _ := json.Marshal(p.Applications)
			architecturesJSON, _ := json.Marshal(p.Architectures)
			_, err = tx.ExecContext(ctx,
				`INSERT INTO papers (url, title, abstract, authors, published, categories, applications, architectures)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p.URL, p.Title, p.Abstract, string(authorsJSON), p.Published,
				string(categoriesJSON), string(applicationsJSON), string(architecturesJSON),
			)
			if err != nil {
				return 0, fmt.Errorf("inserting paper %s: %w", p.URL, err)
			}
			added++

		case err != nil:
			return 0, fmt.Errorf("looking up paper %s: %w", p.URL, err)

		default:
			merged, changed := unionCategories(storedCategories, p.Categories)
			if !changed {
				continue
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE papers SET categories = ? WHERE url = ?`, merged, p.URL,
			); err != nil {
				return 0, fmt.Errorf("updating paper %s: %w", p.URL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing merge: %w", err)
	}
	return added, nil
}

// unionCategories merges incoming category ids into a stored JSON list,
// reporting whether anything was added. The result is sorted so the stored
// form is stable across runs.
func unionCategories(storedJSON string, incoming []string) (string, bool) {
	var stored []string
	if err := json.Unmarshal([]byte(storedJSON), &stored); err != nil {
		stored = nil
	}

	seen := make(map[string]struct{}, len(stored))
	for _, c := range stored {
		seen[c] = struct{}{}
	}
	changed := false
	for _, c := range incoming {
		if _, ok := seen[c]; !ok {
			seen[c] = struct{}{}
			stored = append(stored, c)
			changed = true
		}
	}
	if !changed {
		return storedJSON, false
	}

	sort.Strings(stored)
	merged, _ := json.Marshal(stored)
	return string(merged), true
}

// All returns every archived paper ordered newest-first (the order the
// record collection artifact promises), with URL as the tiebreaker so the
// export is deterministic.
func (a *Archive) All(ctx context.Context) ([]types.Paper, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT url, title, abstract, authors, published, categories, applications, architectures
		 FROM papers ORDER BY published DESC, url ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying papers: %w", err)
	}
	defer rows.Close()

	var papers []types.Paper
	for rows.Next() {
		var p types.Paper
		var authorsJSON, categoriesJSON string
		var applicationsJSON, architecturesJSON sql.NullString
		if err := rows.Scan(&p.URL, &p.Title, &p.Abstract, &authorsJSON, &p.Published,
			&categoriesJSON, &applicationsJSON, &architecturesJSON); err != nil {
			return nil, fmt.Errorf("scanning paper: %w", err)
		}
		// A nil slice would serialize as JSON null and fail the loader's
		// required-field check, so normalize to empty.
		if err := json.Unmarshal([]byte(authorsJSON), &p.Authors); err != nil || p.Authors == nil {
			p.Authors = []string{}
		}
		if err := json.Unmarshal([]byte(categoriesJSON), &p.Categories); err != nil || p.Categories == nil {
			p.Categories = []string{}
		}
		if applicationsJSON.Valid {
			json.Unmarshal([]byte(applicationsJSON.String), &p.Applications)
		}
		if architecturesJSON.Valid {
			json.Unmarshal([]byte(architecturesJSON.String), &p.Architectures)
		}
		papers = append(papers, p)
	}
	return papers, rows.Err()
}
