package stamp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/andyballingall/gitstamp/internal/version"
)

const testCommit = "0123456789abcdef0123456789abcdef01234567"

func TestWrite(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "build", "meta", "version.json")
		require.NoError(t, Write(path, version.Info{Version: "v1.0.0", Commit: testCommit, Dirty: true}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "v1.0.0", gjson.GetBytes(data, "version").String())
		assert.Equal(t, testCommit, gjson.GetBytes(data, "commit").String())
		assert.True(t, gjson.GetBytes(data, "dirty").Bool())

		st, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "version.json")
		require.NoError(t, Write(path, version.Info{Version: "v1.0.0", Commit: testCommit}))
		require.NoError(t, Write(path, version.Info{Version: "v1.1.0", Commit: testCommit}))

		info, err := Read(path)
		require.NoError(t, err)
		assert.Equal(t, "v1.1.0", info.Version)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))
		err := Write(filepath.Join(blocker, "version.json"), version.Info{Version: "v1", Commit: testCommit})
		require.Error(t, err)
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		want       version.Info
		wantErr    string
		wantTypeOf any
	}{
		{
			name:    "valid",
			content: `{"version": "v2.0.0", "commit": "` + testCommit + `"}`,
			want:    version.Info{Version: "v2.0.0", Commit: testCommit},
		},
		{
			name:    "valid with dirty and extra properties",
			content: `{"version": "v2.0.0", "commit": "` + testCommit + `", "dirty": true, "builtBy": "ci"}`,
			want:    version.Info{Version: "v2.0.0", Commit: testCommit, Dirty: true},
		},
		{
			name:       "not json",
			content:    `version=v1`,
			wantErr:    "not valid JSON",
			wantTypeOf: &InvalidStampError{},
		},
		{
			name:       "missing commit",
			content:    `{"version": "v2.0.0"}`,
			wantErr:    "is invalid",
			wantTypeOf: &InvalidStampError{},
		},
		{
			name:       "empty version",
			content:    `{"version": "", "commit": "` + testCommit + `"}`,
			wantErr:    "is invalid",
			wantTypeOf: &InvalidStampError{},
		},
		{
			name:       "short commit",
			content:    `{"version": "v1", "commit": "abc1234"}`,
			wantErr:    "is invalid",
			wantTypeOf: &InvalidStampError{},
		},
		{
			name:       "dirty not boolean",
			content:    `{"version": "v1", "commit": "` + testCommit + `", "dirty": "yes"}`,
			wantErr:    "is invalid",
			wantTypeOf: &InvalidStampError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "version.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			got, err := Read(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				require.ErrorAs(t, err, &tt.wantTypeOf)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Read(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCheck(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "version.json")
	stored := version.Info{Version: "v1.0.0", Commit: testCommit}
	require.NoError(t, Write(path, stored))

	t.Run("up to date", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Check(path, stored))
	})

	t.Run("dirty flag alone does not make it stale", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Check(path, version.Info{Version: "v1.0.0", Commit: testCommit, Dirty: true}))
	})

	t.Run("new tag", func(t *testing.T) {
		t.Parallel()
		current := version.Info{Version: "v1.1.0", Commit: testCommit}
		err := Check(path, current)
		var stale *StaleStampError
		require.ErrorAs(t, err, &stale)
		assert.Equal(t, stored, stale.Stored)
		assert.Equal(t, current, stale.Current)
		assert.Contains(t, err.Error(), "is stale: has v1.0.0 "+testCommit+", repository is at v1.1.0")
	})

	t.Run("new commit", func(t *testing.T) {
		t.Parallel()
		err := Check(path, version.Info{Version: "v1.0.0", Commit: "fedcba9876543210fedcba9876543210fedcba98"})
		var stale *StaleStampError
		require.ErrorAs(t, err, &stale)
	})

	t.Run("unreadable", func(t *testing.T) {
		t.Parallel()
		err := Check(filepath.Join(t.TempDir(), "nope.json"), stored)
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
