package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/finsight/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "transactions.csv")
	require.NoError(t, os.WriteFile(testFile, []byte("id\n"), 0600))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "Existing file", path: testFile},
		{name: "Empty path", path: "", errContains: "empty"},
		{name: "Missing file", path: filepath.Join(tmpDir, "missing.csv"), errContains: "does not exist"},
		{name: "Directory", path: tmpDir, errContains: "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.InputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		allowed   []string
		expectErr bool
	}{
		{name: "Exact match", format: "json", allowed: []string{"text", "json"}},
		{name: "Case insensitive", format: "YAML", allowed: []string{"csv", "yaml"}},
		{name: "Not allowed", format: "xml", allowed: []string{"text", "json", "yaml"}, expectErr: true},
		{name: "Empty set", format: "json", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.OutputFormat(tt.format, tt.allowed...)
			if tt.expectErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unsupported output format")
				return
			}
			assert.NoError(t, err)
		})
	}
}
