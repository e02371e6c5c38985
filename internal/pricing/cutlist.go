package pricing

import "strings"

// Part is one line of a parsed cut list. Dimensions are millimeters.
type Part struct {
	Name     string    `json:"name"`
	Material string    `json:"material"`
	LengthMM float64   `json:"length"`
	WidthMM  float64   `json:"width"`
	Quantity float64   `json:"quantity"`
	Edges    EdgeFlags `json:"edges"`
}

// EdgeFlags marks which of the four edges get banding. Top and bottom run
// along the width, left and right along the length.
type EdgeFlags struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// AreaM2 returns the single-face area of one part in square meters.
func (p Part) AreaM2() float64 {
	return p.LengthMM * p.WidthMM / 1_000_000
}

// bandedLengthMM sums the flagged edge lengths of one part.
func (p Part) bandedLengthMM() float64 {
	var mm float64
	if p.Edges.Top {
		mm += p.WidthMM
	}
	if p.Edges.Bottom {
		mm += p.WidthMM
	}
	if p.Edges.Left {
		mm += p.LengthMM
	}
	if p.Edges.Right {
		mm += p.LengthMM
	}
	return mm
}

// MaterialCost prices the cut list against per-square-meter material prices.
// Parts whose material has no price contribute nothing.
func MaterialCost(parts []Part, pricePerM2ByMaterial map[string]float64) float64 {
	var total float64
	for _, p := range parts {
		total += p.AreaM2() * pricePerM2ByMaterial[p.Material] * p.Quantity
	}
	return total
}

// EdgeBandingCost prices the flagged edges at a per-meter rate.
func EdgeBandingCost(parts []Part, pricePerMeter float64) float64 {
	var meters float64
	for _, p := range parts {
		meters += p.bandedLengthMM() / 1000 * p.Quantity
	}
	return meters * pricePerMeter
}

// PaintingCost prices both faces of every MDF part at a per-square-meter
// rate. Only parts whose material name contains "MDF" are painted.
func PaintingCost(parts []Part, pricePerM2 float64) float64 {
	var area float64
	for _, p := range parts {
		if !strings.Contains(strings.ToLower(p.Material), "mdf") {
			continue
		}
		area += p.AreaM2() * 2 * p.Quantity
	}
	return area * pricePerM2
}
