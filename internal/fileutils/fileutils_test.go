package fileutils_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finsight/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0o600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir), "directories are not files")
}

func TestEnsureParentDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "file.yaml")

	require.NoError(t, fileutils.EnsureParentDir(target))
	info, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWriteFileAtomic(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		write    func(io.Writer) error
		wantErr  bool
		want     string
	}{
		{
			name: "creates file and directories",
			write: func(w io.Writer) error {
				_, err := io.WriteString(w, "fresh")
				return err
			},
			want: "fresh",
		},
		{
			name:     "replaces existing content",
			existing: "old",
			write: func(w io.Writer) error {
				_, err := io.WriteString(w, "new")
				return err
			},
			want: "new",
		},
		{
			name:     "failed write keeps existing content",
			existing: "old",
			write: func(w io.Writer) error {
				_, _ = io.WriteString(w, "partial")
				return errors.New("encoder failed")
			},
			wantErr: true,
			want:    "old",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested")
			target := filepath.Join(dir, "data.txt")
			if tt.existing != "" {
				require.NoError(t, os.MkdirAll(dir, 0o750))
				require.NoError(t, os.WriteFile(target, []byte(tt.existing), 0o600))
			}

			err := fileutils.WriteFileAtomic(target, 0o600, tt.write)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			data, err := os.ReadFile(target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files left behind")

			info, err := os.Stat(target)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
		})
	}
}
