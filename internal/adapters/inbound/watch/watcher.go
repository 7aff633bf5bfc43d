package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rulekit/rulekit/internal/application"
	"github.com/rulekit/rulekit/internal/domain"
)

// Watcher re-validates rule documents as they change on disk. Events are
// debounced per path so an editor's save burst triggers one validation.
type Watcher struct {
	validate *application.ValidateService
	store    domain.ContentStore
	pattern  string
	debounce time.Duration
	logger   *slog.Logger

	// OnResult receives every re-validation result; used by the CLI to
	// print and by tests to observe.
	OnResult func(domain.ValidationResult)
}

// New creates a Watcher. A nil logger falls back to slog.Default.
func New(validate *application.ValidateService, store domain.ContentStore, pattern string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if pattern == "" {
		pattern = domain.DefaultConfig().Pattern
	}
	return &Watcher{
		validate: validate,
		store:    store,
		pattern:  pattern,
		debounce: 100 * time.Millisecond,
		logger:   logger,
	}
}

// Watch blocks until ctx is cancelled, re-validating every matching file
// that is created or written under root.
func (w *Watcher) Watch(ctx context.Context, root string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addRecursive(fw, root); err != nil {
		return err
	}

	w.logger.Info("watching rule documents",
		"root", root,
		"pattern", w.pattern,
	)

	pending := make(map[string]*time.Timer)
	fire := make(chan string)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("watcher stopped")
			return nil

		case path := <-fire:
			w.revalidate(path)

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}

			// New directories need explicit registration.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if event.Op&fsnotify.Create != 0 {
					_ = addRecursive(fw, event.Name)
				}
				continue
			}

			if match, _ := filepath.Match(w.pattern, filepath.Base(event.Name)); !match {
				continue
			}

			path := event.Name
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- path:
				case <-ctx.Done():
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// revalidate runs the full pipeline on the changed file. The cached
// content is dropped first so the fresh bytes are read.
func (w *Watcher) revalidate(path string) {
	w.store.Invalidate(path)

	result := w.validate.ValidateFile(path)

	w.logger.Info("revalidated",
		"path", path,
		"type", string(result.RuleType),
		"valid", result.IsValid,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	if w.OnResult != nil {
		w.OnResult(result)
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		switch d.Name() {
		case ".git", "node_modules", ".rulekit":
			if path != root {
				return filepath.SkipDir
			}
		}
		return fw.Add(path)
	})
}
