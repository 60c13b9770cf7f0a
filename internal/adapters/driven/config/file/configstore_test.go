package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	err = store.Set("openai.model", "gpt-4o")
	require.NoError(t, err)

	val, ok := store.Get("openai.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", val)

	_, ok = store.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("openai.api_key", "sk-test"))
	require.NoError(t, store.Set("chunker.target_size", 1500))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "sk-test", store.GetString("openai.api_key"))
	assert.Equal(t, 1500, store.GetInt("chunker.target_size"))
	assert.True(t, store.GetBool("verbose"))

	// Missing keys fall back to zero values
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))

	// Wrong types fall back too
	assert.Equal(t, "", store.GetString("chunker.target_size"))
	assert.Equal(t, 0, store.GetInt("openai.api_key"))
	assert.False(t, store.GetBool("openai.api_key"))
}

func TestConfigStore_PersistsAcrossLoads(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("arxiv.max_results", 10))

	// A fresh store over the same directory sees the saved value.
	// Nested TOML tables come back as dot-notation keys, and TOML
	// integers decode as int64.
	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 10, reloaded.GetInt("arxiv.max_results"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[openai]\nmodel = \"gpt-4o-mini\"\n\n[openai.embedding]\nmodel = \"text-embedding-3-small\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", store.GetString("openai.model"))
	assert.Equal(t, "text-embedding-3-small", store.GetString("openai.embedding.model"))
}

func TestConfigStore_MissingFileStartsEmpty(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("openai.api_key", "sk-secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
