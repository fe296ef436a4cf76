package app

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/andyballingall/gitstamp/internal/version"
)

type MockManager struct {
	mock.Mock
}

func (m *MockManager) Resolve(ctx context.Context, format version.Format) error {
	args := m.Called(ctx, format)
	return args.Error(0)
}

func (m *MockManager) PrintTag(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManager) PrintCommit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockManager) WriteStamp(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockManager) CheckStamp(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func (m *MockManager) WatchStamp(ctx context.Context, path string, readyChan chan<- struct{}) error {
	args := m.Called(ctx, path, readyChan)
	return args.Error(0)
}

// gitIn runs git in dir, failing the test on error, and returns trimmed stdout.
func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(out))
}

// setupTestRepo creates a repository with one commit and the given tags.
func setupTestRepo(t *testing.T, tags ...string) string {
	t.Helper()
	dir := t.TempDir()

	gitIn(t, dir, "init")
	gitIn(t, dir, "config", "user.email", "test@example.com")
	gitIn(t, dir, "config", "user.name", "Test User")
	gitIn(t, dir, "config", "tag.sort", "refname")
	gitIn(t, dir, "commit", "--allow-empty", "--no-gpg-sign", "-m", "initial commit")
	for _, tag := range tags {
		gitIn(t, dir, "tag", tag)
	}

	return dir
}
