package repo

import (
	"fmt"
)

// NoTagMessage is the diagnostic shown to users when a repository has no tags.
const NoTagMessage = "No tagged version, see git tag."

// NoTagError is returned when no tag can be found. Wrapped is set when the
// tags could not be listed at all.
type NoTagError struct {
	Wrapped error
}

func (e *NoTagError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("no tagged version: %v", e.Wrapped)
	}
	return "no tagged version"
}

func (e *NoTagError) Unwrap() error {
	return e.Wrapped
}

// GitUnavailableError is returned when git is missing, the directory is not a
// repository, or a git command otherwise fails.
type GitUnavailableError struct {
	Wrapped error
	Op      string
}

func (e *GitUnavailableError) Error() string {
	return fmt.Sprintf("git unavailable: failed to %s: %v", e.Op, e.Wrapped)
}

func (e *GitUnavailableError) Unwrap() error {
	return e.Wrapped
}

// InvalidCommitError is returned when git reports something that is not a commit hash.
type InvalidCommitError struct {
	Value string
}

func (e *InvalidCommitError) Error() string {
	return fmt.Sprintf("git returned an invalid commit hash: '%s'", e.Value)
}
