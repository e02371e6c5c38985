package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterialCost(t *testing.T) {
	parts := []Part{
		{Name: "laterala", Material: "PAL", LengthMM: 2000, WidthMM: 600, Quantity: 2},
		{Name: "usa", Material: "MDF", LengthMM: 700, WidthMM: 400, Quantity: 2},
		{Name: "spate", Material: "HDF", LengthMM: 2000, WidthMM: 1000, Quantity: 1},
	}
	prices := map[string]float64{"PAL": 45, "MDF": 90}

	got := MaterialCost(parts, prices)
	// PAL: 1.2 m2 * 2 * 45, MDF: 0.28 m2 * 2 * 90, HDF unpriced contributes 0
	assert.InDelta(t, 1.2*2*45+0.28*2*90, got, 1e-9)
}

func TestEdgeBandingCost(t *testing.T) {
	parts := []Part{
		{
			LengthMM: 1000, WidthMM: 500, Quantity: 2,
			Edges: EdgeFlags{Top: true, Bottom: true, Left: true, Right: true},
		},
		{LengthMM: 800, WidthMM: 300, Quantity: 1, Edges: EdgeFlags{Top: true}},
	}

	got := EdgeBandingCost(parts, 4)
	// first part: (500+500+1000+1000)mm = 3m per piece, 6m total; second: 0.3m
	assert.InDelta(t, (6+0.3)*4, got, 1e-9)
}

func TestEdgeBandingCostNoFlags(t *testing.T) {
	parts := []Part{{LengthMM: 1000, WidthMM: 500, Quantity: 3}}
	assert.Zero(t, EdgeBandingCost(parts, 4))
}

func TestPaintingCostOnlyMDFBothFaces(t *testing.T) {
	parts := []Part{
		{Material: "MDF vopsit", LengthMM: 1000, WidthMM: 500, Quantity: 2},
		{Material: "mdf", LengthMM: 600, WidthMM: 400, Quantity: 1},
		{Material: "PAL", LengthMM: 2000, WidthMM: 600, Quantity: 5},
	}

	got := PaintingCost(parts, 30)
	// 0.5 m2 * 2 faces * 2 pcs + 0.24 m2 * 2 faces * 1 pc
	assert.InDelta(t, (0.5*2*2+0.24*2)*30, got, 1e-9)
}

func TestPartAreaM2(t *testing.T) {
	p := Part{LengthMM: 2800, WidthMM: 2070}
	assert.InDelta(t, 5.796, p.AreaM2(), 1e-9)
}
