package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/domain"
)

func baseCorp() domain.FurnitureDesign {
	return domain.FurnitureDesign{Type: "corp", Material: "pal", Width: 60, Height: 70, Depth: 50}
}

func TestDesignCostDeterministic(t *testing.T) {
	// corp 60x70x50 in PAL: 500 * 1.0 * (60*70*50/100000) = 1050 material,
	// plus the 15% accessories estimate.
	cost, err := DesignCost(baseCorp())
	require.NoError(t, err)
	assert.InDelta(t, 1050*1.15, cost, 1e-9)

	again, err := DesignCost(baseCorp())
	require.NoError(t, err)
	assert.Equal(t, cost, again)
}

func TestDesignCostUnknownType(t *testing.T) {
	_, err := DesignCost(domain.FurnitureDesign{Type: "sifonier", Material: "pal", Width: 1, Height: 1, Depth: 1})
	assert.ErrorIs(t, err, domain.ErrUnknownDesignType)
}

func TestDesignCostMaterialMultipliers(t *testing.T) {
	tests := []struct {
		material string
		factor   float64
	}{
		{"pal", 1.0},
		{"pal_melaminat", 1.1},
		{"mdf", 1.4},
		{"mdf_vopsit", 1.6},
		{"mdf_lucios", 1.7},
		{"furnir", 1.8},
		{"lemn_masiv", 2.5},
		{"carton", 1.0}, // unknown material falls back to 1
		{"LEMN_MASIV", 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.material, func(t *testing.T) {
			d := baseCorp()
			d.Material = tt.material
			cost, err := DesignCost(d)
			require.NoError(t, err)
			assert.InDelta(t, 1050*tt.factor*1.15, cost, 1e-6)
		})
	}
}

func TestDesignCostMonotonicInVolume(t *testing.T) {
	small := baseCorp()
	large := baseCorp()
	large.Width = 120

	cs, err := DesignCost(small)
	require.NoError(t, err)
	cl, err := DesignCost(large)
	require.NoError(t, err)
	assert.Greater(t, cl, cs)
}

func TestDesignCostDoorMultipliers(t *testing.T) {
	plain, err := DesignCost(baseCorp())
	require.NoError(t, err)

	tests := []struct {
		name         string
		doorMaterial string
		factor       float64
	}{
		{"default doors", "pal", 1.1},
		{"glossy mdf doors", "mdf_lucios", 1.3},
		{"solid wood doors", "lemn_masiv", 1.5},
		{"solid wood with space", "lemn masiv stejar", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := baseCorp()
			d.HasDoors = true
			d.DoorMaterial = tt.doorMaterial
			cost, err := DesignCost(d)
			require.NoError(t, err)
			assert.InDelta(t, plain*tt.factor, cost, 1e-6)
			assert.Greater(t, cost, plain)
		})
	}
}

func TestDesignCostDrawersAndPreset(t *testing.T) {
	plain, err := DesignCost(baseCorp())
	require.NoError(t, err)

	d := baseCorp()
	d.HasDrawers = true
	withDrawers, err := DesignCost(d)
	require.NoError(t, err)
	assert.InDelta(t, plain*1.2, withDrawers, 1e-6)

	d = baseCorp()
	d.PresetID = "preset-7"
	withPreset, err := DesignCost(d)
	require.NoError(t, err)
	assert.InDelta(t, plain*1.1, withPreset, 1e-6)
}

func TestDesignCostExplicitAccessories(t *testing.T) {
	d := baseCorp()
	d.Accessories = []domain.DesignAccessory{
		{Name: "balama", Price: 8, Quantity: 4},
		{Name: "maner", Price: 12, Quantity: 2},
	}
	cost, err := DesignCost(d)
	require.NoError(t, err)
	// explicit lines replace the 15% estimate entirely
	assert.InDelta(t, 1050+8*4+12*2, cost, 1e-9)
}

func TestDesignCostZeroDimensions(t *testing.T) {
	d := baseCorp()
	d.Width, d.Height, d.Depth = 0, 0, 0
	cost, err := DesignCost(d)
	require.NoError(t, err)
	assert.Zero(t, cost)
}
