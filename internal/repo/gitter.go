package repo

import (
	"context"
)

// Revision represents a full git commit hash.
type Revision string

func (r Revision) String() string { return string(r) }

// Short returns the conventional seven character abbreviation.
func (r Revision) Short() string {
	if len(r) <= 7 {
		return string(r)
	}
	return string(r[:7])
}

// Gitter defines the interface for git repository operations.
type Gitter interface {
	// Tags lists the repository's tags in the configured order.
	Tags(ctx context.Context) ([]string, error)

	// LatestTag returns the last tag listed by Tags.
	// It returns a *NoTagError if there are none or they cannot be listed.
	LatestTag(ctx context.Context) (string, error)

	// HeadCommit returns the full hash of HEAD.
	HeadCommit(ctx context.Context) (Revision, error)

	// IsDirty reports whether the working tree has uncommitted changes.
	IsDirty(ctx context.Context) (bool, error)

	// GitDir returns the absolute path of the repository's .git directory.
	GitDir(ctx context.Context) (string, error)
}
