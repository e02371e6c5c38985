package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/pricing"
)

// QuoteUC owns the current quote document. Every mutation loads the quote,
// applies a pure domain mutator and writes the result back wholesale.
type QuoteUC struct {
	Store domain.KVStore

	mu sync.Mutex
}

func NewQuoteUC(store domain.KVStore) *QuoteUC {
	return &QuoteUC{Store: store}
}

// Current reads the persisted quote, degrading to a fresh empty quote when
// the document is missing or corrupt.
func (uc *QuoteUC) Current(ctx context.Context) (domain.Quote, error) {
	raw, err := uc.Store.Get(ctx, domain.KeyQuote)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewQuote(), nil
		}
		return domain.Quote{}, fmt.Errorf("load quote: %w", err)
	}
	var q domain.Quote
	if err := json.Unmarshal([]byte(raw), &q); err != nil {
		log.Warn().Err(err).Msg("persisted quote is invalid, starting fresh")
		return domain.NewQuote(), nil
	}
	if q.Items == nil {
		q.Items = []domain.QuoteItem{}
	}
	return q, nil
}

func (uc *QuoteUC) save(ctx context.Context, q domain.Quote) error {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quote: %w", err)
	}
	if err := uc.Store.Set(ctx, domain.KeyQuote, string(data)); err != nil {
		return fmt.Errorf("persist quote: %w", err)
	}
	return nil
}

func (uc *QuoteUC) mutate(ctx context.Context, fn func(domain.Quote) (domain.Quote, error)) (domain.Quote, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	q, err := uc.Current(ctx)
	if err != nil {
		return domain.Quote{}, err
	}
	next, err := fn(q)
	if err != nil {
		return domain.Quote{}, err
	}
	if err := uc.save(ctx, next); err != nil {
		return domain.Quote{}, err
	}
	return next, nil
}

// Reset discards the current quote and persists a fresh one.
func (uc *QuoteUC) Reset(ctx context.Context) (domain.Quote, error) {
	return uc.mutate(ctx, func(domain.Quote) (domain.Quote, error) {
		return domain.NewQuote(), nil
	})
}

func (uc *QuoteUC) AddItem(ctx context.Context, it domain.QuoteItem) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.AddItem(it), nil
	})
}

func (uc *QuoteUC) UpdateItem(ctx context.Context, itemID string, patch domain.QuoteItemPatch) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.UpdateItem(itemID, patch), nil
	})
}

func (uc *QuoteUC) RemoveItem(ctx context.Context, itemID string) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.RemoveItem(itemID), nil
	})
}

func (uc *QuoteUC) SetLaborPercentage(ctx context.Context, pct float64) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.SetLaborPercentage(pct), nil
	})
}

func (uc *QuoteUC) UpdateMetadata(ctx context.Context, meta domain.QuoteMetadata) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.UpdateMetadata(meta), nil
	})
}

func (uc *QuoteUC) AddManualItem(ctx context.Context, description string, quantity, pricePerUnit float64, categoryName string) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.AddManualItem(description, quantity, pricePerUnit, categoryName), nil
	})
}

// AddDesign prices the design (unless a precomputed cost is supplied) and
// appends it as a single quote line.
func (uc *QuoteUC) AddDesign(ctx context.Context, d domain.FurnitureDesign, precomputed *float64) (domain.Quote, error) {
	cost := 0.0
	if precomputed != nil {
		cost = *precomputed
	} else {
		c, err := pricing.DesignCost(d)
		if err != nil {
			return domain.Quote{}, err
		}
		cost = c
	}
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		return q.AddFurnitureDesign(d, cost), nil
	})
}

// AddSet folds every design of a set into the quote, using the precomputed
// cost per design id when present and the pricing formula otherwise.
func (uc *QuoteUC) AddSet(ctx context.Context, setName string, designs []domain.FurnitureDesign, costsByID map[string]float64) (domain.Quote, error) {
	return uc.mutate(ctx, func(q domain.Quote) (domain.Quote, error) {
		for _, d := range designs {
			cost, ok := costsByID[d.ID]
			if !ok {
				c, err := pricing.DesignCost(d)
				if err != nil {
					return domain.Quote{}, fmt.Errorf("set %q: %w", setName, err)
				}
				cost = c
			}
			q = q.AddFurnitureDesign(d, cost)
		}
		return q, nil
	})
}
