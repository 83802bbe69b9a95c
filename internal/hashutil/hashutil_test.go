package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	content := []byte("Hello, World!\nThis is a test file.\n")
	path := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(path, content, 0644))

	sum := Checksum(content)
	assert.Contains(t, sum, "sha256:")
	assert.Len(t, sum, 71) // "sha256:" + 64 hex chars

	fileSum, err := FileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, sum, fileSum)

	// Empty content has the well-known SHA256
	assert.Equal(t, "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))

	_, err = FileChecksum("/non/existent/file")
	assert.Error(t, err)
}

func TestUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "eslint.config.json")
	require.NoError(t, os.WriteFile(path, []byte("[]\n"), 0644))

	tests := []struct {
		name string
		path string
		data string
		want bool
	}{
		{"same content", path, "[]\n", true},
		{"different content", path, "[{}]\n", false},
		{"missing file", filepath.Join(dir, "missing.json"), "[]\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unchanged(tt.path, []byte(tt.data)))
		})
	}
}
