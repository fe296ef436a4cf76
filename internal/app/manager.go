package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/andyballingall/gitstamp/internal/config"
	"github.com/andyballingall/gitstamp/internal/repo"
	"github.com/andyballingall/gitstamp/internal/stamp"
	"github.com/andyballingall/gitstamp/internal/version"
	"github.com/andyballingall/gitstamp/internal/watch"
)

// Manager defines the operations behind each gitstamp command.
type Manager interface {
	Resolve(ctx context.Context, format version.Format) error
	PrintTag(ctx context.Context) error
	PrintCommit(ctx context.Context) error
	WriteStamp(ctx context.Context, path string) error
	CheckStamp(ctx context.Context, path string) error
	WatchStamp(ctx context.Context, path string, readyChan chan<- struct{}) error
}

// Ensure the interface is satisfied.
var _ Manager = (*LazyManager)(nil)

// LazyManager acts as a placeholder for a real Manager implementation, allowing
// for deferred initialization of dependencies.
type LazyManager struct {
	inner   Manager
	closers []io.Closer
}

func (l *LazyManager) SetInner(m Manager) {
	l.inner = m
}

// HasInner returns true if the inner manager has been set.
// This is used by PersistentPreRunE to skip initialization if already configured (e.g., in tests).
func (l *LazyManager) HasInner() bool {
	return l.inner != nil
}

// AddCloser registers a resource to release when the command finishes.
func (l *LazyManager) AddCloser(c io.Closer) {
	l.closers = append(l.closers, c)
}

// Close releases every registered resource.
func (l *LazyManager) Close() error {
	var errs []error
	for _, c := range l.closers {
		errs = append(errs, c.Close())
	}
	l.closers = nil
	return errors.Join(errs...)
}

func (l *LazyManager) check() Manager {
	if l.inner == nil {
		panic("LazyManager accessed before initialization; check command wiring.")
	}
	return l.inner
}

func (l *LazyManager) Resolve(ctx context.Context, format version.Format) error {
	return l.check().Resolve(ctx, format)
}

func (l *LazyManager) PrintTag(ctx context.Context) error {
	return l.check().PrintTag(ctx)
}

func (l *LazyManager) PrintCommit(ctx context.Context) error {
	return l.check().PrintCommit(ctx)
}

func (l *LazyManager) WriteStamp(ctx context.Context, path string) error {
	return l.check().WriteStamp(ctx, path)
}

func (l *LazyManager) CheckStamp(ctx context.Context, path string) error {
	return l.check().CheckStamp(ctx, path)
}

func (l *LazyManager) WatchStamp(ctx context.Context, path string, readyChan chan<- struct{}) error {
	return l.check().WatchStamp(ctx, path, readyChan)
}

// Ensure the interface is satisfied.
var _ Manager = (*CLIManager)(nil)

// CLIManager is the concrete implementation of the Manager interface.
type CLIManager struct {
	logger   *slog.Logger
	cfg      *config.Config
	gitter   repo.Gitter
	resolver *version.Resolver
	dir      string
	out      io.Writer
}

// NewCLIManager creates a CLIManager for the repository at dir, writing command output to out.
func NewCLIManager(l *slog.Logger, cfg *config.Config, g repo.Gitter, dir string, out io.Writer) *CLIManager {
	return &CLIManager{
		logger:   l,
		cfg:      cfg,
		gitter:   g,
		resolver: version.NewResolver(g, l, cfg.DetectDirty),
		dir:      dir,
		out:      out,
	}
}

func (m *CLIManager) ldflags() version.LDFlags {
	return version.LDFlags{VersionVar: m.cfg.LDFlags.VersionVar, CommitVar: m.cfg.LDFlags.CommitVar}
}

// stampPath applies the configured default and anchors relative paths at the repository.
func (m *CLIManager) stampPath(path string) string {
	if path == "" {
		path = m.cfg.StampFile
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}

func (m *CLIManager) Resolve(ctx context.Context, format version.Format) error {
	m.logger.Debug("resolving", "dir", m.dir, "format", format, "tagSort", m.cfg.TagSort)
	info, err := m.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	return version.Render(m.out, info, format, m.ldflags())
}

func (m *CLIManager) PrintTag(ctx context.Context) error {
	tag, err := m.resolver.Version(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(m.out, tag)
	return err
}

func (m *CLIManager) PrintCommit(ctx context.Context) error {
	commit, err := m.resolver.Commit(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(m.out, commit)
	return err
}

func (m *CLIManager) WriteStamp(ctx context.Context, path string) error {
	path = m.stampPath(path)
	info, err := m.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if err = stamp.Write(path, info); err != nil {
		return fmt.Errorf("failed to write stamp file: %w", err)
	}
	m.logger.Info("Stamp written", "path", path,
		"version", info.Version, "commit", repo.Revision(info.Commit).Short())
	return nil
}

func (m *CLIManager) CheckStamp(ctx context.Context, path string) error {
	path = m.stampPath(path)
	info, err := m.resolver.Resolve(ctx)
	if err != nil {
		return err
	}
	if err = stamp.Check(path, info); err != nil {
		return err
	}
	m.logger.Info("Stamp is up to date", "path", path,
		"version", info.Version, "commit", repo.Revision(info.Commit).Short())
	return nil
}

// WatchStamp rewrites the stamp file whenever HEAD or the tags change.
// If you want to know when the watcher is ready to start listening to changes,
// pass a non-nil readyChan to be notified.
func (m *CLIManager) WatchStamp(ctx context.Context, path string, readyChan chan<- struct{}) error {
	path = m.stampPath(path)
	gitDir, err := m.gitter.GitDir(ctx)
	if err != nil {
		return err
	}

	watcher := watch.NewWatcher(gitDir, m.resolver, m.logger)

	var last version.Info
	callback := func(info version.Info, err error) {
		if err != nil {
			m.logger.Error("Resolution failed", "error", err)
			return
		}
		if info == last {
			return
		}
		if wErr := stamp.Write(path, info); wErr != nil {
			m.logger.Error("Failed to write stamp file", "error", wErr)
			return
		}
		last = info
		m.logger.Info("Stamp updated", "path", path,
			"version", info.Version, "commit", repo.Revision(info.Commit).Short())
	}

	// Forward watcher Ready signal if caller wants notification
	stopped := make(chan struct{})
	if readyChan != nil {
		go forwardReady(watcher.Ready, readyChan, stopped)
	}

	err = watcher.Watch(ctx, callback)
	close(stopped)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// forwardReady signals out once ready closes, giving up as soon as stop closes.
func forwardReady(ready <-chan struct{}, out chan<- struct{}, stop <-chan struct{}) {
	select {
	case <-ready:
	case <-stop:
		return
	}
	select {
	case out <- struct{}{}:
	case <-stop:
	}
}
