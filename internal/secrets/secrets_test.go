// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "entrez-api-key"), []byte("abc123\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "proxy-base-url"), []byte("  https://proxy.example.com  "), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty-secret"), []byte("   \n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), []byte("nope"), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "abc123", got["entrez-api-key"])
	assert.Equal(t, "https://proxy.example.com", got["proxy-base-url"])
	assert.NotContains(t, got, "empty-secret")
	assert.NotContains(t, got, ".hidden")
	assert.NotContains(t, got, "subdir")
}

func TestLoadMissingDirectory(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "no-such-dir"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
