package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/seed"
)

// CatalogUC owns the catalog document: load with seed fallback, write-through
// persistence, structural CRUD and JSON import/export. Operations serialize
// on a mutex; the store itself is last-write-wins.
type CatalogUC struct {
	Store domain.KVStore

	mu sync.Mutex
}

func NewCatalogUC(store domain.KVStore) *CatalogUC {
	return &CatalogUC{Store: store}
}

// Load reads the persisted catalog. Missing, corrupt or structurally invalid
// data (no categories array) degrades to the built-in seed, which is
// persisted immediately so subsequent reads are stable. Every load heals
// missing materials/accessories arrays.
func (uc *CatalogUC) Load(ctx context.Context) (domain.Database, error) {
	raw, err := uc.Store.Get(ctx, domain.KeyDatabase)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return domain.Database{}, fmt.Errorf("load catalog: %w", err)
		}
		return uc.resetToSeed(ctx, "empty store")
	}

	db, err := decodeDatabase([]byte(raw))
	if err != nil {
		log.Warn().Err(err).Msg("persisted catalog is invalid, falling back to seed")
		return uc.resetToSeed(ctx, "corrupt document")
	}
	return db.Normalize(), nil
}

func (uc *CatalogUC) resetToSeed(ctx context.Context, reason string) (domain.Database, error) {
	db := seed.DefaultDatabase()
	if err := uc.save(ctx, db); err != nil {
		return domain.Database{}, err
	}
	log.Info().Str("reason", reason).Msg("seeded default catalog")
	return db, nil
}

func (uc *CatalogUC) save(ctx context.Context, db domain.Database) error {
	data, err := json.Marshal(db)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := uc.Store.Set(ctx, domain.KeyDatabase, string(data)); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}

// decodeDatabase parses a catalog document, requiring a categories array.
func decodeDatabase(data []byte) (domain.Database, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.Database{}, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	rawCats, ok := probe["categories"]
	if !ok {
		return domain.Database{}, fmt.Errorf("%w: missing categories", domain.ErrInvalidFormat)
	}
	var cats []domain.Category
	if err := json.Unmarshal(rawCats, &cats); err != nil {
		return domain.Database{}, fmt.Errorf("%w: categories is not an array", domain.ErrInvalidFormat)
	}
	var db domain.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return domain.Database{}, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	return db, nil
}

// mutate runs one pure catalog mutation under the lock with write-through
// persistence. The persisted document is untouched when fn fails.
func (uc *CatalogUC) mutate(ctx context.Context, fn func(domain.Database) (domain.Database, error)) (domain.Database, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	db, err := uc.Load(ctx)
	if err != nil {
		return domain.Database{}, err
	}
	next, err := fn(db)
	if err != nil {
		return domain.Database{}, err
	}
	if err := uc.save(ctx, next); err != nil {
		return domain.Database{}, err
	}
	return next, nil
}

func (uc *CatalogUC) AddCategory(ctx context.Context, name string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.AddCategory(name)
	})
}

func (uc *CatalogUC) DeleteCategory(ctx context.Context, name string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.DeleteCategory(name)
	})
}

func (uc *CatalogUC) AddSubcategory(ctx context.Context, category string, sub domain.Subcategory) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.AddSubcategory(category, sub)
	})
}

func (uc *CatalogUC) UpdateSubcategory(ctx context.Context, category, oldName string, sub domain.Subcategory) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.UpdateSubcategory(category, oldName, sub)
	})
}

func (uc *CatalogUC) DeleteSubcategory(ctx context.Context, category, name string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.DeleteSubcategory(category, name)
	})
}

func (uc *CatalogUC) AddProduct(ctx context.Context, category, sub string, p domain.Product) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.AddProduct(category, sub, p)
	})
}

func (uc *CatalogUC) UpdateProduct(ctx context.Context, category, sub, productID string, p domain.Product) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.UpdateProduct(category, sub, productID, p)
	})
}

func (uc *CatalogUC) DeleteProduct(ctx context.Context, category, sub, productID string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.DeleteProduct(category, sub, productID)
	})
}

func (uc *CatalogUC) UpsertMaterial(ctx context.Context, m domain.Material) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.UpsertMaterial(m, time.Now().UTC()), nil
	})
}

func (uc *CatalogUC) DeleteMaterial(ctx context.Context, id string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.DeleteMaterial(id), nil
	})
}

func (uc *CatalogUC) UpsertAccessory(ctx context.Context, a domain.Accessory) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.UpsertAccessory(a), nil
	})
}

func (uc *CatalogUC) DeleteAccessory(ctx context.Context, id string) (domain.Database, error) {
	return uc.mutate(ctx, func(db domain.Database) (domain.Database, error) {
		return db.DeleteAccessory(id), nil
	})
}

// ExportJSON serializes the full catalog document.
func (uc *CatalogUC) ExportJSON(ctx context.Context) ([]byte, error) {
	db, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(db, "", "  ")
}

// ExportCategoryJSON serializes a single-category subset in the same document
// shape, so it can be re-imported as-is.
func (uc *CatalogUC) ExportCategoryJSON(ctx context.Context, name string) ([]byte, error) {
	db, err := uc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range db.Categories {
		if c.Name == name {
			subset := domain.Database{Categories: []domain.Category{c}}.Normalize()
			return json.MarshalIndent(subset, "", "  ")
		}
	}
	return nil, fmt.Errorf("%w: category %q", domain.ErrNotFound, name)
}

// ImportJSON replaces the persisted catalog with the given document. A
// payload that fails to parse or lacks a categories array leaves the
// persisted data untouched.
func (uc *CatalogUC) ImportJSON(ctx context.Context, data []byte) (domain.Database, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	db, err := decodeDatabase(data)
	if err != nil {
		return domain.Database{}, err
	}
	db = db.Normalize()
	if err := uc.save(ctx, db); err != nil {
		return domain.Database{}, err
	}
	log.Info().Int("categories", len(db.Categories)).Msg("catalog imported")
	return db, nil
}

// Replace persists an externally constructed catalog (importer output).
func (uc *CatalogUC) Replace(ctx context.Context, db domain.Database) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.save(ctx, db.Normalize())
}
