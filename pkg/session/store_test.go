package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CurrentGeneratesOnce(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Current()
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestStore_StableAcrossReinitialization(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	first, err := store.Current()
	require.NoError(t, err)

	// A new store over the same directory sees the same identifier.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	second, err := reopened.Current()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStore_Rotate(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	_, err = store.Current()
	require.NoError(t, err)

	err = store.Rotate("server-issued-id")
	require.NoError(t, err)

	id, err := store.Current()
	require.NoError(t, err)
	assert.Equal(t, "server-issued-id", id)

	// Rotation persists across reinitialization.
	reopened, err := NewStore(dir)
	require.NoError(t, err)
	id, err = reopened.Current()
	require.NoError(t, err)
	assert.Equal(t, "server-issued-id", id)
}

func TestStore_RotateRejectsInvalidIDs(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"forward slash", "a/b"},
		{"backslash", "a\\b"},
		{"newline", "a\nb"},
		{"null byte", "a\x00b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, store.Rotate(tt.id))
		})
	}
}

func TestStore_Reset(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	first, err := store.Current()
	require.NoError(t, err)

	require.NoError(t, store.Reset())

	second, err := store.Current()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestStore_InvalidStoredIDRegenerated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, storeFile), []byte("bad/id"), 0600))

	store, err := NewStore(dir)
	require.NoError(t, err)

	id, err := store.Current()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NotEqual(t, "bad/id", id)
}
