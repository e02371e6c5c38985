// Package seed provides the built-in default catalog used when the persisted
// document is missing or corrupt.
package seed

import (
	"time"

	"github.com/ofertare/mobila/internal/domain"
)

// DefaultDatabase returns the starter catalog: the common hardware
// subcategories with their dynamic schemas, a few reference products and the
// standard sheet materials.
func DefaultDatabase() domain.Database {
	db := domain.Database{
		Categories: []domain.Category{
			{
				Name: "Accesorii",
				Subcategories: []domain.Subcategory{
					{
						Name: "Balamale",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "tip", Type: domain.FieldSelect, Options: []string{"aplicata", "semiaplicata", "ingropata"}},
							{Name: "amortizare", Type: domain.FieldBoolean},
						},
						Products: []domain.Product{
							{
								ID:   "1700000000001",
								Cod:  "BAL-110",
								Pret: 4.5,
								Fields: map[string]any{
									"nume":       "Balama aplicata 110°",
									"tip":        "aplicata",
									"amortizare": false,
								},
							},
							{
								ID:   "1700000000002",
								Cod:  "BAL-110-S",
								Pret: 8.9,
								Fields: map[string]any{
									"nume":       "Balama aplicata 110° cu amortizare",
									"tip":        "aplicata",
									"amortizare": true,
								},
							},
						},
					},
					{
						Name: "Glisiere",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "lungime", Type: domain.FieldNumber},
							{Name: "extragere", Type: domain.FieldSelect, Options: []string{"partiala", "totala"}},
						},
						Products: []domain.Product{
							{
								ID:   "1700000000003",
								Cod:  "GL-450",
								Pret: 18,
								Fields: map[string]any{
									"nume":      "Glisiera cu bile 450mm",
									"lungime":   450.0,
									"extragere": "totala",
								},
							},
						},
					},
					{
						Name: "Manere",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "distanta", Type: domain.FieldNumber},
						},
						Products: []domain.Product{},
					},
				},
			},
			{
				Name: "Materiale",
				Subcategories: []domain.Subcategory{
					{
						Name: "PAL",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "grosime", Type: domain.FieldNumber},
							{Name: "decor", Type: domain.FieldText},
						},
						Products: []domain.Product{
							{
								ID:   "1700000000004",
								Cod:  "PAL-W980",
								Pret: 185,
								Fields: map[string]any{
									"nume":    "PAL melaminat alb W980",
									"grosime": 18.0,
									"decor":   "alb",
								},
							},
						},
					},
					{
						Name: "MDF",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "grosime", Type: domain.FieldNumber},
							{Name: "finisaj", Type: domain.FieldSelect, Options: []string{"brut", "vopsit", "lucios"}},
						},
						Products: []domain.Product{},
					},
				},
			},
		},
		Materials: []domain.Material{
			{
				ID:            "mat-pal-18",
				Name:          "PAL melaminat 18mm",
				Type:          "pal",
				ThicknessMM:   18,
				LengthMM:      2800,
				WidthMM:       2070,
				PricePerSheet: 185,
			},
			{
				ID:            "mat-mdf-18",
				Name:          "MDF brut 18mm",
				Type:          "mdf",
				ThicknessMM:   18,
				LengthMM:      2800,
				WidthMM:       2070,
				PricePerSheet: 290,
			},
		},
		Accessories: []domain.Accessory{
			{ID: "acc-picior", Name: "Picior reglabil", Type: "picioare", Price: 2.2, Unit: "buc", Quantity: 4},
		},
	}

	seedTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range db.Materials {
		m := db.Materials[i]
		if area := m.SheetAreaM2(); area > 0 {
			m.PricePerSquareMeter = m.PricePerSheet / area
		}
		m.UpdatedAt = seedTime
		db.Materials[i] = m
	}

	return db.Normalize()
}
