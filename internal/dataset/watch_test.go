// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWatcherReloadsOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	papersPath := filepath.Join(dir, "papers.json")
	countsPath := filepath.Join(dir, "category_counts.json")
	if err := os.WriteFile(papersPath, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(countsPath, []byte(`{"category_counts":{}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Dataset, 1)
	w := NewWatcher(papersPath, countsPath, func(ds *Dataset) {
		select {
		case reloaded <- ds:
		default:
		}
	}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond) // let the watch register

	// Replace the artifact the way the harvester does: tmp write + rename.
	tmp := filepath.Join(dir, "papers.json.tmp")
	if err := os.WriteFile(tmp, []byte(validCollection), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, papersPath); err != nil {
		t.Fatal(err)
	}

	select {
	case ds := <-reloaded:
		if len(ds.Papers) != 2 {
			t.Errorf("reloaded papers = %d, want 2", len(ds.Papers))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}
}

func TestWatcherKeepsSnapshotOnBadReload(t *testing.T) {
	dir := t.TempDir()
	papersPath := filepath.Join(dir, "papers.json")
	countsPath := filepath.Join(dir, "category_counts.json")
	if err := os.WriteFile(papersPath, []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Dataset, 1)
	w := NewWatcher(papersPath, countsPath, func(ds *Dataset) { reloaded <- ds }, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)
	time.Sleep(100 * time.Millisecond)

	// A malformed replacement must be discarded, not delivered.
	if err := os.WriteFile(papersPath, []byte(`{"not": "an array"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloaded:
		t.Fatal("malformed dataset was delivered")
	case <-time.After(1500 * time.Millisecond):
	}
}
