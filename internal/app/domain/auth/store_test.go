package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claimsctl", "credential")
	store := NewFileStore(path)

	_, ok := store.Load()
	assert.False(t, ok)
	require.NoError(t, store.Remove(), "removing a missing file is not an error")

	require.NoError(t, store.Save("token-value"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	raw, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "token-value", raw)

	require.NoError(t, store.Remove())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_TrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential")
	require.NoError(t, os.WriteFile(path, []byte("  abc.def.ghi\n"), 0o600))

	raw, ok := NewFileStore(path).Load()
	require.True(t, ok)
	assert.Equal(t, "abc.def.ghi", raw)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("")
	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.Save("x"))
	raw, ok := store.Load()
	assert.True(t, ok)
	assert.Equal(t, "x", raw)

	require.NoError(t, store.Remove())
	_, ok = store.Load()
	assert.False(t, ok)
}
