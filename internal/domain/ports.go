package domain

import "context"

// Storage keys shared with the original single-page client. They are part of
// the persisted-document contract and must not change.
const (
	KeyDatabase = "furniture-quote-db"
	KeyQuote    = "furniture-quote-current"
	KeyBackups  = "furniture-quote-db-backups"
	KeyDesigns  = "furnitureDesigns"
	KeySets     = "furnitureSets"
)

// KVStore is the persistence port: a flat key-value store of serialized JSON
// documents. Every document is read and written wholesale, last write wins.
// Get returns ErrNotFound when the key has never been set.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// FileStorage stores uploaded binary assets (product images) and resolves
// them to serveable URLs.
type FileStorage interface {
	Save(name string, data []byte) (string, error)
	Delete(path string) error
}
