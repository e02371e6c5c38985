package domain

import "time"

// FurnitureDesign is a parametric furniture specification priced by formula
// rather than looked up from the catalog. Dimensions are centimeters.
//
// SetID, when non-empty, must reference a FurnitureSet whose Designs slice
// contains this design's id; the design use case keeps the two collections in
// sync on every mutation.
type FurnitureDesign struct {
	ID           string            `json:"id"`
	PresetID     string            `json:"presetId,omitempty"`
	Type         string            `json:"type"`
	Color        string            `json:"color"`
	Material     string            `json:"material"`
	Room         string            `json:"room"`
	Width        float64           `json:"width"`
	Height       float64           `json:"height"`
	Depth        float64           `json:"depth"`
	Name         string            `json:"name"`
	Accessories  []DesignAccessory `json:"accessories,omitempty"`
	HasDrawers   bool              `json:"hasDrawers,omitempty"`
	HasDoors     bool              `json:"hasDoors,omitempty"`
	DoorMaterial string            `json:"doorMaterial,omitempty"`
	DoorColor    string            `json:"doorColor,omitempty"`
	SetID        string            `json:"setId,omitempty"`
}

// DesignAccessory is one explicit accessory line on a design.
type DesignAccessory struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// FurnitureSet groups designs by id.
type FurnitureSet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Room      string    `json:"room"`
	Designs   []string  `json:"designs"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccessoriesTotal sums the explicit accessory lines.
func (d FurnitureDesign) AccessoriesTotal() float64 {
	var total float64
	for _, a := range d.Accessories {
		total += a.Price * a.Quantity
	}
	return total
}

// Contains reports whether the set references the design id.
func (s FurnitureSet) Contains(designID string) bool {
	for _, id := range s.Designs {
		if id == designID {
			return true
		}
	}
	return false
}
