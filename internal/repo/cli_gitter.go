package repo

import (
	"context"
	"regexp"
	"strings"

	"github.com/andyballingall/gitstamp/internal/config"
	"github.com/andyballingall/gitstamp/internal/runner"
)

// commitPattern matches SHA-1 (40) and SHA-256 (64) object names.
var commitPattern = regexp.MustCompile(`^[0-9a-f]{40,64}$`)

// CLIGitter is the concrete implementation of Gitter using the git CLI.
type CLIGitter struct {
	cfg    *config.Config
	runner runner.Runner
	dir    string
}

// NewCLIGitter creates a new CLIGitter which runs git in dir.
func NewCLIGitter(cfg *config.Config, r runner.Runner, dir string) *CLIGitter {
	return &CLIGitter{cfg: cfg, runner: r, dir: dir}
}

// git runs a git subcommand in the repository directory and returns its trimmed stdout.
func (g *CLIGitter) git(ctx context.Context, args ...string) (string, error) {
	res, err := g.runner.Run(ctx, runner.Command{Name: "git", Args: args, Dir: g.dir})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Stdout), nil
}

// tagListArgs returns the 'git tag' arguments for the configured ordering.
func (g *CLIGitter) tagListArgs() []string {
	switch g.cfg.TagSort {
	case config.TagSortVersion:
		return []string{"tag", "--sort=v:refname"}
	case config.TagSortCreatorDate:
		return []string{"tag", "--sort=creatordate"}
	default:
		return []string{"tag"}
	}
}

// Tags lists the repository's tags in the configured order, skipping blank lines.
func (g *CLIGitter) Tags(ctx context.Context) ([]string, error) {
	out, err := g.git(ctx, g.tagListArgs()...)
	if err != nil {
		return nil, &GitUnavailableError{Op: "list tags", Wrapped: err}
	}

	var tags []string
	for _, line := range strings.Split(out, "\n") {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// LatestTag returns the last tag listed by Tags.
func (g *CLIGitter) LatestTag(ctx context.Context) (string, error) {
	tags, err := g.Tags(ctx)
	if err != nil {
		return "", &NoTagError{Wrapped: err}
	}
	if len(tags) == 0 {
		return "", &NoTagError{}
	}
	return tags[len(tags)-1], nil
}

// HeadCommit returns the full hash of HEAD.
func (g *CLIGitter) HeadCommit(ctx context.Context) (Revision, error) {
	out, err := g.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", &GitUnavailableError{Op: "resolve HEAD", Wrapped: err}
	}
	if !commitPattern.MatchString(out) {
		return "", &InvalidCommitError{Value: out}
	}
	return Revision(out), nil
}

// IsDirty reports whether 'git status --porcelain' lists any changes.
func (g *CLIGitter) IsDirty(ctx context.Context) (bool, error) {
	out, err := g.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, &GitUnavailableError{Op: "read working tree status", Wrapped: err}
	}
	return out != "", nil
}

// GitDir returns the absolute path of the repository's .git directory.
func (g *CLIGitter) GitDir(ctx context.Context) (string, error) {
	out, err := g.git(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", &GitUnavailableError{Op: "find git directory", Wrapped: err}
	}
	return out, nil
}
