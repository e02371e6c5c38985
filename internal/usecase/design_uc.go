package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ofertare/mobila/internal/domain"
)

// DesignUC owns the saved designs and furniture sets. The two collections
// carry a bidirectional relation (design.SetID vs set.Designs) that every
// mutation keeps in sync; an owner index rebuilt from the sets on each load
// is the authority, not ad-hoc membership checks.
type DesignUC struct {
	Store domain.KVStore

	mu sync.Mutex
}

func NewDesignUC(store domain.KVStore) *DesignUC {
	return &DesignUC{Store: store}
}

func (uc *DesignUC) loadList(ctx context.Context, key string, out any) error {
	raw, err := uc.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidFormat, key, err)
	}
	return nil
}

func (uc *DesignUC) saveList(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return uc.Store.Set(ctx, key, string(data))
}

// Designs returns all saved designs.
func (uc *DesignUC) Designs(ctx context.Context) ([]domain.FurnitureDesign, error) {
	designs := []domain.FurnitureDesign{}
	if err := uc.loadList(ctx, domain.KeyDesigns, &designs); err != nil {
		return nil, err
	}
	return designs, nil
}

// Sets returns all furniture sets.
func (uc *DesignUC) Sets(ctx context.Context) ([]domain.FurnitureSet, error) {
	sets := []domain.FurnitureSet{}
	if err := uc.loadList(ctx, domain.KeySets, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// ownerIndex maps design id to owning set id.
func ownerIndex(sets []domain.FurnitureSet) map[string]string {
	idx := make(map[string]string)
	for _, s := range sets {
		for _, id := range s.Designs {
			idx[id] = s.ID
		}
	}
	return idx
}

type designState struct {
	designs []domain.FurnitureDesign
	sets    []domain.FurnitureSet
}

func (uc *DesignUC) load(ctx context.Context) (designState, error) {
	var st designState
	st.designs = []domain.FurnitureDesign{}
	st.sets = []domain.FurnitureSet{}
	if err := uc.loadList(ctx, domain.KeyDesigns, &st.designs); err != nil {
		return st, err
	}
	if err := uc.loadList(ctx, domain.KeySets, &st.sets); err != nil {
		return st, err
	}
	return st, nil
}

// reconcile realigns every design's SetID with the owner index so the
// persisted collections can never disagree.
func (st *designState) reconcile() {
	idx := ownerIndex(st.sets)
	for i := range st.designs {
		st.designs[i].SetID = idx[st.designs[i].ID]
	}
}

func (uc *DesignUC) persist(ctx context.Context, st designState) error {
	st.reconcile()
	if err := uc.saveList(ctx, domain.KeyDesigns, st.designs); err != nil {
		return err
	}
	return uc.saveList(ctx, domain.KeySets, st.sets)
}

// SaveDesign inserts or replaces a design. Set membership is controlled by
// the set operations, so an incoming SetID is overwritten by the owner index.
func (uc *DesignUC) SaveDesign(ctx context.Context, d domain.FurnitureDesign) (domain.FurnitureDesign, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return domain.FurnitureDesign{}, err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	replaced := false
	for i := range st.designs {
		if st.designs[i].ID == d.ID {
			st.designs[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		st.designs = append(st.designs, d)
	}
	if err := uc.persist(ctx, st); err != nil {
		return domain.FurnitureDesign{}, err
	}
	return d, nil
}

// DeleteDesign removes a design and drops its id from any owning set.
func (uc *DesignUC) DeleteDesign(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return err
	}
	kept := st.designs[:0]
	found := false
	for _, d := range st.designs {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return fmt.Errorf("%w: design %q", domain.ErrNotFound, id)
	}
	st.designs = kept
	for i := range st.sets {
		st.sets[i].Designs = removeID(st.sets[i].Designs, id)
	}
	return uc.persist(ctx, st)
}

// CreateSet creates a set and claims every referenced design. Designs already
// owned by another set are moved, not duplicated.
func (uc *DesignUC) CreateSet(ctx context.Context, s domain.FurnitureSet) (domain.FurnitureSet, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return domain.FurnitureSet{}, err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now
	if s.Designs == nil {
		s.Designs = []string{}
	}
	for i := range st.sets {
		st.sets[i].Designs = removeIDs(st.sets[i].Designs, s.Designs)
	}
	st.sets = append(st.sets, s)
	if err := uc.persist(ctx, st); err != nil {
		return domain.FurnitureSet{}, err
	}
	return s, nil
}

// AddDesignToSet moves a design into a set, removing it from any previous
// owner.
func (uc *DesignUC) AddDesignToSet(ctx context.Context, setID, designID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return err
	}
	if !hasDesign(st.designs, designID) {
		return fmt.Errorf("%w: design %q", domain.ErrNotFound, designID)
	}
	target := -1
	for i := range st.sets {
		st.sets[i].Designs = removeID(st.sets[i].Designs, designID)
		if st.sets[i].ID == setID {
			target = i
		}
	}
	if target < 0 {
		return fmt.Errorf("%w: set %q", domain.ErrNotFound, setID)
	}
	st.sets[target].Designs = append(st.sets[target].Designs, designID)
	st.sets[target].UpdatedAt = time.Now().UTC()
	return uc.persist(ctx, st)
}

// RemoveDesignFromSet detaches a design from a set; the design itself stays.
func (uc *DesignUC) RemoveDesignFromSet(ctx context.Context, setID, designID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return err
	}
	for i := range st.sets {
		if st.sets[i].ID != setID {
			continue
		}
		if !st.sets[i].Contains(designID) {
			return fmt.Errorf("%w: design %q in set %q", domain.ErrNotFound, designID, setID)
		}
		st.sets[i].Designs = removeID(st.sets[i].Designs, designID)
		st.sets[i].UpdatedAt = time.Now().UTC()
		return uc.persist(ctx, st)
	}
	return fmt.Errorf("%w: set %q", domain.ErrNotFound, setID)
}

// DeleteSet removes the set; member designs survive with their SetID cleared.
func (uc *DesignUC) DeleteSet(ctx context.Context, setID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return err
	}
	kept := st.sets[:0]
	found := false
	for _, s := range st.sets {
		if s.ID == setID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return fmt.Errorf("%w: set %q", domain.ErrNotFound, setID)
	}
	st.sets = kept
	return uc.persist(ctx, st)
}

// SetDesigns resolves a set's member designs in set order.
func (uc *DesignUC) SetDesigns(ctx context.Context, setID string) (domain.FurnitureSet, []domain.FurnitureDesign, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	st, err := uc.load(ctx)
	if err != nil {
		return domain.FurnitureSet{}, nil, err
	}
	for _, s := range st.sets {
		if s.ID != setID {
			continue
		}
		byID := make(map[string]domain.FurnitureDesign, len(st.designs))
		for _, d := range st.designs {
			byID[d.ID] = d
		}
		members := make([]domain.FurnitureDesign, 0, len(s.Designs))
		for _, id := range s.Designs {
			if d, ok := byID[id]; ok {
				members = append(members, d)
			}
		}
		return s, members, nil
	}
	return domain.FurnitureSet{}, nil, fmt.Errorf("%w: set %q", domain.ErrNotFound, setID)
}

func hasDesign(designs []domain.FurnitureDesign, id string) bool {
	for _, d := range designs {
		if d.ID == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	kept := ids[:0]
	for _, v := range ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	return kept
}

func removeIDs(ids []string, drop []string) []string {
	set := make(map[string]struct{}, len(drop))
	for _, id := range drop {
		set[id] = struct{}{}
	}
	kept := ids[:0]
	for _, v := range ids {
		if _, ok := set[v]; !ok {
			kept = append(kept, v)
		}
	}
	return kept
}
