package server

// watch.go - dataset directory watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/SreeTarak2/datavisuals/internal/dataset"
)

// debounce interval for editor save patterns (write bursts, rename+write)
const watchDebounce = 200 * time.Millisecond

// watchDatasets reloads CSV files in the datasets directory as they change
// and broadcasts a refresh ping per reloaded dataset.
func (s *Server) watchDatasets(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.datasetsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.datasetsDir, err)
	}
	s.logger.Info("watching datasets directory", "dir", s.datasetsDir)

	pending := make(map[string]struct{})
	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".csv") {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			pending[event.Name] = struct{}{}
			timer.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)

		case <-timer.C:
			for path := range pending {
				s.reloadDataset(ctx, path)
			}
			pending = make(map[string]struct{})
		}
	}
}

// reloadDataset replaces the stored dataset whose name matches the CSV file
// (keeping its id stable across reloads), or inserts a new one.
func (s *Server) reloadDataset(ctx context.Context, path string) {
	ds, err := dataset.LoadCSV(path)
	if err != nil {
		s.logger.Warn("failed to reload dataset", "path", path, "error", err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), ".csv")
	infos, err := s.store.ListDatasets(ctx)
	if err != nil {
		s.logger.Warn("failed to list datasets", "error", err)
		return
	}
	for _, info := range infos {
		if info.Name == name {
			ds.ID = info.ID
			break
		}
	}

	if err := s.store.SaveDataset(ctx, ds); err != nil {
		s.logger.Warn("failed to save reloaded dataset", "path", path, "error", err)
		return
	}

	s.logger.Info("dataset reloaded", "name", name, "id", ds.ID, "rows", len(ds.Rows))
	s.notifier.Broadcast(ds.ID)
}
