package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/adapters/store"
	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/seed"
)

func TestCatalogLoadSeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewCatalogUC(kv)

	db, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultDatabase(), db)

	// the seed is persisted, so the next load reads the stored document
	raw, err := kv.Get(ctx, domain.KeyDatabase)
	require.NoError(t, err)
	assert.Contains(t, raw, `"Accesorii"`)
}

func TestCatalogLoadFallsBackOnCorruptDocument(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, domain.KeyDatabase, "{not json"))

	db, err := NewCatalogUC(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultDatabase(), db)
}

func TestCatalogLoadRejectsMissingCategories(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	require.NoError(t, kv.Set(ctx, domain.KeyDatabase, `{"materials":[]}`))

	db, err := NewCatalogUC(kv).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultDatabase(), db, "document without categories degrades to seed")
}

func TestCatalogMutationWritesThrough(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewCatalogUC(kv)

	_, err := uc.AddCategory(ctx, "Feronerie")
	require.NoError(t, err)

	db, err := uc.Load(ctx)
	require.NoError(t, err)
	names := make([]string, 0, len(db.Categories))
	for _, c := range db.Categories {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Feronerie")
}

func TestCatalogFailedMutationLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewCatalogUC(kv)

	before, err := uc.Load(ctx)
	require.NoError(t, err)

	_, err = uc.AddCategory(ctx, "Accesorii")
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	after, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCatalogExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewCatalogUC(kv)

	_, err := uc.AddCategory(ctx, "Feronerie")
	require.NoError(t, err)
	before, err := uc.Load(ctx)
	require.NoError(t, err)

	data, err := uc.ExportJSON(ctx)
	require.NoError(t, err)

	fresh := NewCatalogUC(store.NewMemory())
	imported, err := fresh.ImportJSON(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, before, imported)

	reloaded, err := fresh.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, reloaded)
}

func TestCatalogImportInvalidLeavesDataUntouched(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	uc := NewCatalogUC(kv)

	before, err := uc.Load(ctx)
	require.NoError(t, err)

	_, err = uc.ImportJSON(ctx, []byte(`{"materials": []}`))
	require.ErrorIs(t, err, domain.ErrInvalidFormat)

	_, err = uc.ImportJSON(ctx, []byte(`not json at all`))
	require.ErrorIs(t, err, domain.ErrInvalidFormat)

	after, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCatalogExportCategoryJSON(t *testing.T) {
	ctx := context.Background()
	uc := NewCatalogUC(store.NewMemory())

	data, err := uc.ExportCategoryJSON(ctx, "Accesorii")
	require.NoError(t, err)

	// the subset reimports as a standalone catalog
	fresh := NewCatalogUC(store.NewMemory())
	imported, err := fresh.ImportJSON(ctx, data)
	require.NoError(t, err)
	require.Len(t, imported.Categories, 1)
	assert.Equal(t, "Accesorii", imported.Categories[0].Name)
	assert.Empty(t, imported.Materials)

	_, err = uc.ExportCategoryJSON(ctx, "Inexistenta")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogAddProductPersists(t *testing.T) {
	ctx := context.Background()
	uc := NewCatalogUC(store.NewMemory())

	db, err := uc.AddProduct(ctx, "Accesorii", "Manere", domain.Product{
		Cod: "MAN-128", Pret: 7.5,
		Fields: map[string]any{"nume": "Maner bara 128mm", "distanta": 128.0},
	})
	require.NoError(t, err)

	var manere domain.Subcategory
	for _, c := range db.Categories {
		if c.Name != "Accesorii" {
			continue
		}
		for _, s := range c.Subcategories {
			if s.Name == "Manere" {
				manere = s
			}
		}
	}
	require.Len(t, manere.Products, 1)
	assert.NotEmpty(t, manere.Products[0].ID)

	reloaded, err := uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, db, reloaded)
}
