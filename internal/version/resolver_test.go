package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/andyballingall/gitstamp/internal/repo"
)

const testCommit = "0123456789abcdef0123456789abcdef01234567"

// MockGitter is a testify mock for repo.Gitter.
type MockGitter struct {
	mock.Mock
}

func (m *MockGitter) Tags(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]string)
	return tags, args.Error(1)
}

func (m *MockGitter) LatestTag(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitter) HeadCommit(ctx context.Context) (repo.Revision, error) {
	args := m.Called(ctx)
	rev, _ := args.Get(0).(repo.Revision)
	return rev, args.Error(1)
}

func (m *MockGitter) IsDirty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockGitter) GitDir(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("version and commit", func(t *testing.T) {
		t.Parallel()
		g := &MockGitter{}
		g.On("LatestTag", mock.Anything).Return("v1.1.0", nil)
		g.On("HeadCommit", mock.Anything).Return(repo.Revision(testCommit), nil)

		info, err := NewResolver(g, nil, false).Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, Info{Version: "v1.1.0", Commit: testCommit}, info)
		g.AssertExpectations(t)
		g.AssertNotCalled(t, "IsDirty", mock.Anything)
	})

	t.Run("dirty detection", func(t *testing.T) {
		t.Parallel()
		g := &MockGitter{}
		g.On("LatestTag", mock.Anything).Return("v1.1.0", nil)
		g.On("HeadCommit", mock.Anything).Return(repo.Revision(testCommit), nil)
		g.On("IsDirty", mock.Anything).Return(true, nil)

		info, err := NewResolver(g, nil, true).Resolve(context.Background())
		require.NoError(t, err)
		assert.True(t, info.Dirty)
		g.AssertExpectations(t)
	})

	t.Run("no tag stops before HEAD", func(t *testing.T) {
		t.Parallel()
		g := &MockGitter{}
		g.On("LatestTag", mock.Anything).Return("", &repo.NoTagError{})

		_, err := NewResolver(g, nil, false).Resolve(context.Background())
		var noTag *repo.NoTagError
		require.ErrorAs(t, err, &noTag)
		g.AssertNotCalled(t, "HeadCommit", mock.Anything)
	})

	t.Run("commit failure", func(t *testing.T) {
		t.Parallel()
		g := &MockGitter{}
		g.On("LatestTag", mock.Anything).Return("v1.1.0", nil)
		g.On("HeadCommit", mock.Anything).Return(repo.Revision(""),
			&repo.GitUnavailableError{Op: "resolve HEAD", Wrapped: errors.New("boom")})

		_, err := NewResolver(g, nil, false).Resolve(context.Background())
		var unavailable *repo.GitUnavailableError
		require.ErrorAs(t, err, &unavailable)
	})

	t.Run("dirty failure", func(t *testing.T) {
		t.Parallel()
		g := &MockGitter{}
		g.On("LatestTag", mock.Anything).Return("v1.1.0", nil)
		g.On("HeadCommit", mock.Anything).Return(repo.Revision(testCommit), nil)
		g.On("IsDirty", mock.Anything).Return(false, errors.New("status failed"))

		_, err := NewResolver(g, nil, true).Resolve(context.Background())
		require.EqualError(t, err, "status failed")
	})
}

func TestResolver_VersionAndCommit(t *testing.T) {
	t.Parallel()
	g := &MockGitter{}
	g.On("LatestTag", mock.Anything).Return("v2.0.0", nil)
	g.On("HeadCommit", mock.Anything).Return(repo.Revision(testCommit), nil)
	r := NewResolver(g, nil, false)

	v, err := r.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", v)

	c, err := r.Commit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCommit, c)
}
