package domain

import "time"

// Material is a reusable sheet-material definition, independent of the
// category tree. PricePerSquareMeter is derived from the sheet price and the
// sheet dimensions and refreshed on every upsert.
type Material struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Type                string    `json:"type"`
	ThicknessMM         float64   `json:"thickness"`
	LengthMM            float64   `json:"length"`
	WidthMM             float64   `json:"width"`
	PricePerSheet       float64   `json:"pricePerSheet"`
	PricePerSquareMeter float64   `json:"pricePerSquareMeter"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// Accessory is a catalog-level accessory (hinges, slides, handles bought in
// bulk), distinct from the per-design accessory lines on FurnitureDesign.
type Accessory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Quantity    float64 `json:"quantity"`
	Description string  `json:"description,omitempty"`
}

// SheetAreaM2 returns the sheet surface in square meters.
func (m Material) SheetAreaM2() float64 {
	return m.LengthMM / 1000 * m.WidthMM / 1000
}

// UpsertMaterial inserts or replaces a material by id, recomputing the
// derived per-square-meter price and stamping UpdatedAt.
func (db Database) UpsertMaterial(m Material, now time.Time) Database {
	if area := m.SheetAreaM2(); area > 0 {
		m.PricePerSquareMeter = m.PricePerSheet / area
	} else {
		m.PricePerSquareMeter = 0
	}
	m.UpdatedAt = now
	out := db.Clone()
	for i := range out.Materials {
		if out.Materials[i].ID == m.ID {
			out.Materials[i] = m
			return out
		}
	}
	out.Materials = append(out.Materials, m)
	return out
}

// DeleteMaterial filters the material out by id. Deleting an absent id is a
// no-op, mirroring the filter semantics of the persisted document.
func (db Database) DeleteMaterial(id string) Database {
	out := db.Clone()
	kept := out.Materials[:0]
	for _, m := range out.Materials {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	out.Materials = kept
	return out
}

// UpsertAccessory inserts or replaces a catalog accessory by id.
func (db Database) UpsertAccessory(a Accessory) Database {
	out := db.Clone()
	for i := range out.Accessories {
		if out.Accessories[i].ID == a.ID {
			out.Accessories[i] = a
			return out
		}
	}
	out.Accessories = append(out.Accessories, a)
	return out
}

// DeleteAccessory filters the accessory out by id.
func (db Database) DeleteAccessory(id string) Database {
	out := db.Clone()
	kept := out.Accessories[:0]
	for _, a := range out.Accessories {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	out.Accessories = kept
	return out
}
