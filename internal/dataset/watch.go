// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 500 * time.Millisecond

// Watcher reloads the dataset when the harvester replaces the artifact
// files. It watches the parent directories rather than the files
// themselves, since an atomic replace (write tmp, rename) swaps the inode
// out from under a file watch. Reload events are debounced so the two
// artifacts landing back to back trigger a single reload of the pair.
type Watcher struct {
	papersPath string
	countsPath string
	onReload   func(*Dataset)
	logger     *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher that calls onReload with each freshly
// validated snapshot. A reload that fails validation is logged and
// discarded; the previous snapshot stays live.
func NewWatcher(papersPath, countsPath string, onReload func(*Dataset), logger *zap.Logger) *Watcher {
	return &Watcher{
		papersPath: papersPath,
		countsPath: countsPath,
		onReload:   onReload,
		logger:     logger,
	}
}

// Start blocks watching for artifact replacement until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dirs := map[string]struct{}{
		filepath.Dir(w.papersPath): {},
		filepath.Dir(w.countsPath): {},
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug("artifact event", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			w.scheduleReload()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("artifact watch error", zap.Error(err))
		}
	}
}

// relevant reports whether the event touches one of the two artifacts.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return ev.Name == w.papersPath || ev.Name == w.countsPath
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.reload)
}

func (w *Watcher) reload() {
	ds, err := LoadFromFiles(w.papersPath, w.countsPath, w.logger)
	if err != nil {
		w.logger.Error("dataset reload rejected, keeping previous snapshot", zap.Error(err))
		return
	}
	w.logger.Info("dataset reloaded",
		zap.Int("papers", len(ds.Papers)),
		zap.String("scrape_date", ds.Facets.ScrapeDate()))
	w.onReload(ds)
}
