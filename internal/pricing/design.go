// Package pricing holds the parametric furniture cost formula and the
// cut-list helpers. Everything here is pure and deterministic; prices are RON.
package pricing

import (
	"fmt"
	"strings"

	"github.com/ofertare/mobila/internal/domain"
)

// basePrices maps furniture type to its base price. Unknown types fail
// closed: there is no catch-all price to guess with.
var basePrices = map[string]float64{
	"corp":       500,
	"dulap":      1500,
	"dressing":   2000,
	"pat":        1000,
	"noptiera":   350,
	"comoda":     700,
	"birou":      800,
	"biblioteca": 1100,
	"masa":       600,
	"scaun":      250,
	"canapea":    1200,
	"coltar":     1800,
	"fotoliu":    700,
}

// materialMultipliers scale the base price by body material. Unknown
// materials fall back to 1.
var materialMultipliers = map[string]float64{
	"pal":           1.0,
	"pal_melaminat": 1.1,
	"mdf":           1.4,
	"mdf_vopsit":    1.6,
	"mdf_lucios":    1.7,
	"furnir":        1.8,
	"lemn_masiv":    2.5,
}

const (
	// volumeDivisor turns width*height*depth (cm) into the volume factor.
	volumeDivisor = 100000

	presetMultiplier        = 1.1
	drawerMultiplier        = 1.2
	doorMultiplierDefault   = 1.1
	doorMultiplierGlossyMDF = 1.3
	doorMultiplierSolidWood = 1.5

	// defaultAccessoriesRate estimates accessories when the design carries no
	// explicit accessory lines.
	defaultAccessoriesRate = 0.15
)

func materialMultiplier(material string) float64 {
	if m, ok := materialMultipliers[strings.ToLower(material)]; ok {
		return m
	}
	return 1
}

func doorMultiplier(d domain.FurnitureDesign) float64 {
	if !d.HasDoors {
		return 1
	}
	mat := strings.ToLower(d.DoorMaterial)
	switch {
	case strings.Contains(mat, "lemn_masiv") || strings.Contains(mat, "lemn masiv"):
		return doorMultiplierSolidWood
	case strings.HasPrefix(mat, "mdf") && strings.Contains(mat, "lucios"):
		return doorMultiplierGlossyMDF
	default:
		return doorMultiplierDefault
	}
}

// DesignCost estimates a design's price:
//
//	base[type] * material * volume * preset * doors * drawers + accessories
//
// where volume = width*height*depth/100000 (dimensions in cm). Explicit
// accessory lines are summed; otherwise accessories are estimated as 15% of
// the material cost. Non-negative dimensions always yield a non-negative
// cost; an unknown furniture type is an error.
func DesignCost(d domain.FurnitureDesign) (float64, error) {
	base, ok := basePrices[strings.ToLower(d.Type)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrUnknownDesignType, d.Type)
	}

	volumeFactor := d.Width * d.Height * d.Depth / volumeDivisor

	preset := 1.0
	if d.PresetID != "" {
		preset = presetMultiplier
	}
	drawers := 1.0
	if d.HasDrawers {
		drawers = drawerMultiplier
	}

	materialCost := base * materialMultiplier(d.Material) * volumeFactor * preset * doorMultiplier(d) * drawers

	accessoriesCost := materialCost * defaultAccessoriesRate
	if len(d.Accessories) > 0 {
		accessoriesCost = d.AccessoriesTotal()
	}

	return materialCost + accessoriesCost, nil
}
