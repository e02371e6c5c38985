package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/adapters/store"
	"github.com/ofertare/mobila/internal/domain"
)

func newDesignFixture(t *testing.T) (*DesignUC, []domain.FurnitureDesign) {
	t.Helper()
	uc := NewDesignUC(store.NewMemory())
	ctx := context.Background()

	var saved []domain.FurnitureDesign
	for _, name := range []string{"Dulap", "Noptiera stanga", "Noptiera dreapta"} {
		d, err := uc.SaveDesign(ctx, domain.FurnitureDesign{Name: name, Type: "dulap", Material: "pal"})
		require.NoError(t, err)
		saved = append(saved, d)
	}
	return uc, saved
}

func TestSaveDesignAssignsID(t *testing.T) {
	ctx := context.Background()
	uc := NewDesignUC(store.NewMemory())

	d, err := uc.SaveDesign(ctx, domain.FurnitureDesign{Name: "Birou", Type: "birou"})
	require.NoError(t, err)
	assert.NotEmpty(t, d.ID)

	d.Name = "Birou colt"
	updated, err := uc.SaveDesign(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, d.ID, updated.ID)

	designs, err := uc.Designs(ctx)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "Birou colt", designs[0].Name)
}

func TestCreateSetClaimsDesigns(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	set, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Dormitor", Designs: []string{ds[0].ID, ds[1].ID}})
	require.NoError(t, err)
	assert.NotEmpty(t, set.ID)

	designs, err := uc.Designs(ctx)
	require.NoError(t, err)
	byName := map[string]domain.FurnitureDesign{}
	for _, d := range designs {
		byName[d.Name] = d
	}
	assert.Equal(t, set.ID, byName["Dulap"].SetID)
	assert.Equal(t, set.ID, byName["Noptiera stanga"].SetID)
	assert.Empty(t, byName["Noptiera dreapta"].SetID)
}

func TestCreateSetMovesDesignsBetweenSets(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	first, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Dormitor", Designs: []string{ds[0].ID}})
	require.NoError(t, err)
	second, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Hol", Designs: []string{ds[0].ID}})
	require.NoError(t, err)

	sets, err := uc.Sets(ctx)
	require.NoError(t, err)
	byID := map[string]domain.FurnitureSet{}
	for _, s := range sets {
		byID[s.ID] = s
	}
	assert.Empty(t, byID[first.ID].Designs, "design moved out of the first set")
	assert.Equal(t, []string{ds[0].ID}, byID[second.ID].Designs)
}

func TestAddAndRemoveDesignFromSet(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	set, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Dormitor"})
	require.NoError(t, err)

	require.NoError(t, uc.AddDesignToSet(ctx, set.ID, ds[2].ID))
	designs, err := uc.Designs(ctx)
	require.NoError(t, err)
	for _, d := range designs {
		if d.ID == ds[2].ID {
			assert.Equal(t, set.ID, d.SetID)
		}
	}

	require.NoError(t, uc.RemoveDesignFromSet(ctx, set.ID, ds[2].ID))
	designs, err = uc.Designs(ctx)
	require.NoError(t, err)
	for _, d := range designs {
		assert.Empty(t, d.SetID)
	}

	err = uc.RemoveDesignFromSet(ctx, set.ID, ds[2].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.AddDesignToSet(ctx, set.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = uc.AddDesignToSet(ctx, "missing", ds[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteDesignDropsFromSet(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	set, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Dormitor", Designs: []string{ds[0].ID, ds[1].ID}})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteDesign(ctx, ds[0].ID))

	got, members, err := uc.SetDesigns(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ds[1].ID}, got.Designs)
	require.Len(t, members, 1)
	assert.Equal(t, ds[1].ID, members[0].ID)

	err = uc.DeleteDesign(ctx, ds[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSetKeepsDesigns(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	set, err := uc.CreateSet(ctx, domain.FurnitureSet{Name: "Dormitor", Designs: []string{ds[0].ID, ds[1].ID}})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteSet(ctx, set.ID))

	designs, err := uc.Designs(ctx)
	require.NoError(t, err)
	assert.Len(t, designs, 3, "member designs survive the set")
	for _, d := range designs {
		assert.Empty(t, d.SetID)
	}

	sets, err := uc.Sets(ctx)
	require.NoError(t, err)
	assert.Empty(t, sets)
}

func TestSetDesignsResolvesInSetOrder(t *testing.T) {
	ctx := context.Background()
	uc, ds := newDesignFixture(t)

	set, err := uc.CreateSet(ctx, domain.FurnitureSet{
		Name:    "Dormitor",
		Designs: []string{ds[2].ID, ds[0].ID},
	})
	require.NoError(t, err)

	_, members, err := uc.SetDesigns(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, ds[2].ID, members[0].ID)
	assert.Equal(t, ds[0].ID, members[1].ID)

	_, _, err = uc.SetDesigns(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
