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
)

// MaxBackups bounds the stored snapshot list; the oldest entry is evicted
// first.
const MaxBackups = 10

// BackupUC keeps a FIFO-bounded list of full catalog snapshots. The core only
// exposes "snapshot now" and "restore"; callers decide when a destructive
// operation warrants a snapshot.
type BackupUC struct {
	Store domain.KVStore

	mu sync.Mutex
}

func NewBackupUC(store domain.KVStore) *BackupUC {
	return &BackupUC{Store: store}
}

// List returns the stored snapshots, oldest first.
func (uc *BackupUC) List(ctx context.Context) ([]domain.Backup, error) {
	raw, err := uc.Store.Get(ctx, domain.KeyBackups)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.Backup{}, nil
		}
		return nil, fmt.Errorf("load backups: %w", err)
	}
	backups := []domain.Backup{}
	if err := json.Unmarshal([]byte(raw), &backups); err != nil {
		return nil, fmt.Errorf("%w: backups: %v", domain.ErrInvalidFormat, err)
	}
	return backups, nil
}

// Create appends a deep-copied snapshot of the given catalog, evicting the
// oldest entries beyond MaxBackups.
func (uc *BackupUC) Create(ctx context.Context, db domain.Database) (domain.Backup, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	backups, err := uc.List(ctx)
	if err != nil {
		return domain.Backup{}, err
	}
	b := domain.Backup{
		Date:     time.Now().UTC().Format(time.RFC3339),
		Database: db.Clone(),
	}
	backups = append(backups, b)
	if len(backups) > MaxBackups {
		backups = backups[len(backups)-MaxBackups:]
	}
	if err := uc.save(ctx, backups); err != nil {
		return domain.Backup{}, err
	}
	log.Info().Str("date", b.Date).Int("kept", len(backups)).Msg("catalog snapshot created")
	return b, nil
}

// Restore replaces the persisted catalog with the snapshot taken at the
// given date and returns the restored document.
func (uc *BackupUC) Restore(ctx context.Context, date string) (domain.Database, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	backups, err := uc.List(ctx)
	if err != nil {
		return domain.Database{}, err
	}
	for _, b := range backups {
		if b.Date != date {
			continue
		}
		db := b.Database.Normalize()
		data, err := json.Marshal(db)
		if err != nil {
			return domain.Database{}, err
		}
		if err := uc.Store.Set(ctx, domain.KeyDatabase, string(data)); err != nil {
			return domain.Database{}, fmt.Errorf("persist restored catalog: %w", err)
		}
		log.Info().Str("date", date).Msg("catalog restored from snapshot")
		return db, nil
	}
	return domain.Database{}, fmt.Errorf("%w: backup %q", domain.ErrNotFound, date)
}

func (uc *BackupUC) save(ctx context.Context, backups []domain.Backup) error {
	data, err := json.Marshal(backups)
	if err != nil {
		return err
	}
	return uc.Store.Set(ctx, domain.KeyBackups, string(data))
}
