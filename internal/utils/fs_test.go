package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/ucmpurge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestCheckFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		path    func() string
		wantErr error
	}{
		{
			name:    "regular file",
			path:    func() string { return writeFile(t, dir, "ok.properties", []byte("url=x\n")) },
			wantErr: nil,
		},
		{
			name:    "missing file",
			path:    func() string { return filepath.Join(dir, "missing") },
			wantErr: domain.ErrNotAFile,
		},
		{
			name:    "directory",
			path:    func() string { return dir },
			wantErr: domain.ErrNotAFile,
		},
		{
			name:    "empty file",
			path:    func() string { return writeFile(t, dir, "empty.mf", nil) },
			wantErr: domain.ErrEmptyFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckFile(tt.path())
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			var accessErr *domain.FileAccessError
			assert.ErrorAs(t, err, &accessErr)
		})
	}
}

func TestCheckFile_NotReadable(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root can read files regardless of mode")
	}

	path := writeFile(t, t.TempDir(), "locked.properties", []byte("url=x\n"))
	require.NoError(t, os.Chmod(path, 0000))
	t.Cleanup(func() { os.Chmod(path, 0644) })

	err := CheckFile(path)
	assert.ErrorIs(t, err, domain.ErrNotReadable)
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain utf-8", func(t *testing.T) {
		path := writeFile(t, dir, "plain.mf", []byte("HEADER\nfoo.csv;1;\n"))
		text, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "HEADER\nfoo.csv;1;\n", text)
	})

	t.Run("utf-8 bom is dropped", func(t *testing.T) {
		path := writeFile(t, dir, "bom.mf", append([]byte{0xEF, 0xBB, 0xBF}, []byte("url=x")...))
		text, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "url=x", text)
	})

	t.Run("utf-16le with bom", func(t *testing.T) {
		path := writeFile(t, dir, "utf16.mf", []byte{0xFF, 0xFE, 'a', 0, '=', 0, 'b', 0})
		text, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a=b", text)
	})

	t.Run("latin-1 without bom", func(t *testing.T) {
		path := writeFile(t, dir, "latin1.properties", []byte("username=jos\xe9\n"))
		text, err := ReadTextFile(path)
		require.NoError(t, err)
		assert.Equal(t, "username=josé\n", text)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadTextFile(filepath.Join(dir, "nope"))
		assert.ErrorIs(t, err, domain.ErrNotReadable)
	})
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "config.yaml"), ExpandPath("~/config.yaml"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/etc/ucm", ExpandPath("/etc/ucm"))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "report.json")

	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(filepath.Join(dir, "a", "b"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
