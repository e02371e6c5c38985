package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/domain"
)

// kvContract exercises the behavior every backend must share.
func kvContract(t *testing.T, kv domain.KVStore) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, kv.Set(ctx, domain.KeyDatabase, `{"categories":[]}`))
	got, err := kv.Get(ctx, domain.KeyDatabase)
	require.NoError(t, err)
	assert.Equal(t, `{"categories":[]}`, got)

	// last write wins
	require.NoError(t, kv.Set(ctx, domain.KeyDatabase, `{"categories":[{"name":"A"}]}`))
	got, err = kv.Get(ctx, domain.KeyDatabase)
	require.NoError(t, err)
	assert.Contains(t, got, `"A"`)

	require.NoError(t, kv.Delete(ctx, domain.KeyDatabase))
	_, err = kv.Get(ctx, domain.KeyDatabase)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// deleting an absent key is not an error
	assert.NoError(t, kv.Delete(ctx, "missing"))
}

func TestMemoryContract(t *testing.T) {
	kvContract(t, NewMemory())
}

func TestFileContract(t *testing.T) {
	kv, err := NewFile(t.TempDir())
	require.NoError(t, err)
	kvContract(t, kv)
}

func TestSQLiteContract(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer kv.Close()
	kvContract(t, kv)
}

func TestFileSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	kv, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, domain.KeyQuote, `{"items":[]}`))

	reopened, err := NewFile(dir)
	require.NoError(t, err)
	got, err := reopened.Get(ctx, domain.KeyQuote)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)
}

func TestFileSanitizesKeyNames(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFile(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "../escape/attempt", "data"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "the key must map to a single file inside the store dir")

	got, err := kv.Get(ctx, "../escape/attempt")
	require.NoError(t, err)
	assert.Equal(t, "data", got)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	ctx := context.Background()

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, domain.KeyDesigns, `[]`))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Get(ctx, domain.KeyDesigns)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
}
