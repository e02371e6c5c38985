package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/adapters/store"
	"github.com/ofertare/mobila/internal/domain"
)

func catalogNamed(name string) domain.Database {
	return domain.Database{Categories: []domain.Category{{Name: name}}}.Normalize()
}

func TestBackupListEmpty(t *testing.T) {
	backups, err := NewBackupUC(store.NewMemory()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestBackupCreateSnapshotsDeepCopy(t *testing.T) {
	ctx := context.Background()
	uc := NewBackupUC(store.NewMemory())

	db := catalogNamed("Accesorii")
	b, err := uc.Create(ctx, db)
	require.NoError(t, err)
	assert.NotEmpty(t, b.Date)

	// mutating the input after the snapshot must not change the stored copy
	db.Categories[0].Name = "Changed"
	backups, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, backups, 1)
	assert.Equal(t, "Accesorii", backups[0].Database.Categories[0].Name)
}

func TestBackupRingEvictsOldest(t *testing.T) {
	ctx := context.Background()
	uc := NewBackupUC(store.NewMemory())

	for i := 0; i < MaxBackups+3; i++ {
		_, err := uc.Create(ctx, catalogNamed(fmt.Sprintf("cat-%02d", i)))
		require.NoError(t, err)
	}

	backups, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, backups, MaxBackups)
	// the three oldest snapshots are gone, order is oldest first
	assert.Equal(t, "cat-03", backups[0].Database.Categories[0].Name)
	assert.Equal(t, fmt.Sprintf("cat-%02d", MaxBackups+2), backups[MaxBackups-1].Database.Categories[0].Name)
}

func TestBackupRestoreWritesCatalog(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewBackupUC(kv)

	b, err := uc.Create(ctx, catalogNamed("Snapshot"))
	require.NoError(t, err)

	restored, err := uc.Restore(ctx, b.Date)
	require.NoError(t, err)
	assert.Equal(t, "Snapshot", restored.Categories[0].Name)

	// the restored document is now the live catalog
	db, err := NewCatalogUC(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, restored, db)
}

func TestBackupRestoreUnknownDate(t *testing.T) {
	_, err := NewBackupUC(store.NewMemory()).Restore(context.Background(), "2020-01-01T00:00:00Z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
