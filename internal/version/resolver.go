package version

import (
	"context"
	"log/slog"

	"github.com/andyballingall/gitstamp/internal/repo"
)

// Resolver turns repository state into an Info.
type Resolver struct {
	gitter      repo.Gitter
	logger      *slog.Logger
	detectDirty bool
}

// NewResolver creates a Resolver. When detectDirty is set, Resolve also
// reports whether the working tree has uncommitted changes.
func NewResolver(gitter repo.Gitter, logger *slog.Logger, detectDirty bool) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		gitter:      gitter,
		logger:      logger.With("component", "resolver"),
		detectDirty: detectDirty,
	}
}

// Resolve reads the latest tag and then HEAD. It fails with a *repo.NoTagError
// before looking at HEAD if the repository has no tags.
func (r *Resolver) Resolve(ctx context.Context) (Info, error) {
	tag, err := r.Version(ctx)
	if err != nil {
		return Info{}, err
	}

	commit, err := r.Commit(ctx)
	if err != nil {
		return Info{}, err
	}

	info := Info{Version: tag, Commit: commit}

	if r.detectDirty {
		dirty, dErr := r.gitter.IsDirty(ctx)
		if dErr != nil {
			return Info{}, dErr
		}
		info.Dirty = dirty
	}

	r.logger.Debug("Resolved", "version", info.Version, "commit", info.Commit, "dirty", info.Dirty)
	return info, nil
}

// Version returns the latest tag.
func (r *Resolver) Version(ctx context.Context) (string, error) {
	return r.gitter.LatestTag(ctx)
}

// Commit returns the full hash of HEAD.
func (r *Resolver) Commit(ctx context.Context) (string, error) {
	rev, err := r.gitter.HeadCommit(ctx)
	if err != nil {
		return "", err
	}
	return rev.String(), nil
}
