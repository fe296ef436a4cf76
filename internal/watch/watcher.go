// Package watch keeps a resolved version up to date as a repository's refs move.
package watch

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/andyballingall/gitstamp/internal/version"
)

// DebounceDuration is how long the watcher waits for git to finish a burst of
// ref updates before re-resolving.
const DebounceDuration = 100 * time.Millisecond

// Resolver produces the current version.Info.
type Resolver interface {
	Resolve(ctx context.Context) (version.Info, error)
}

// Watcher monitors a git directory and re-resolves when HEAD or any ref changes.
type Watcher struct {
	gitDir   string
	resolver Resolver
	logger   *slog.Logger
	Ready    chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher for the repository whose .git directory is gitDir.
func NewWatcher(gitDir string, resolver Resolver, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		gitDir:     gitDir,
		resolver:   resolver,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch resolves once immediately and again after every debounced change,
// passing each result to callback. It blocks until the context is cancelled.
func (w *Watcher) Watch(ctx context.Context, callback func(version.Info, error)) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err = watcher.Add(w.gitDir); err != nil {
		return err
	}
	if err = w.addRecursive(watcher, filepath.Join(w.gitDir, "refs")); err != nil {
		return err
	}

	w.logger.Info("Watching for changes", "gitDir", w.gitDir)
	if w.Ready != nil {
		close(w.Ready)
	}

	callback(w.resolver.Resolve(ctx))

	timer := time.NewTimer(DebounceDuration)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(watcher, event) {
				timer.Reset(DebounceDuration)
			}
		case <-timer.C:
			w.logger.Debug("Refs changed, resolving")
			callback(w.resolver.Resolve(ctx))
		}
	}
}

// handleEvent adds newly created ref directories to the watcher and reports
// whether the event can change the resolved version.
func (w *Watcher) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	if event.Has(fsnotify.Create) {
		info, err := os.Stat(event.Name)
		if err == nil && info.IsDir() {
			if !w.isRefPath(event.Name) {
				return false
			}
			if err := w.addRecursive(watcher, event.Name); err != nil {
				w.logger.Error("Failed to watch new directory", "path", event.Name, "error", err)
			}
			// git may have written the ref inside before the watch was added.
			return true
		}
	}

	return w.isRefPath(event.Name)
}

// isRefPath reports whether path is HEAD, packed-refs or a loose ref. Lock
// files git writes while updating are ignored; their rename is what counts.
func (w *Watcher) isRefPath(path string) bool {
	if strings.HasSuffix(path, ".lock") {
		return false
	}
	rel, err := filepath.Rel(w.gitDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	return rel == "HEAD" || rel == "packed-refs" || strings.HasPrefix(rel, "refs/")
}

// addRecursive adds root and all its subdirectories to the watcher. A missing
// root is skipped.
func (w *Watcher) addRecursive(watcher *fsnotify.Watcher, root string) error {
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
