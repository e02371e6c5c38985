package seed

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDatabaseIsDeterministic(t *testing.T) {
	a, err := json.Marshal(DefaultDatabase())
	require.NoError(t, err)
	b, err := json.Marshal(DefaultDatabase())
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestDefaultDatabaseProductsMatchSchemas(t *testing.T) {
	db := DefaultDatabase()
	require.NotEmpty(t, db.Categories)

	for _, c := range db.Categories {
		for _, s := range c.Subcategories {
			for _, p := range s.Products {
				assert.NotEmpty(t, p.ID)
				assert.NotEmpty(t, p.Cod)
				assert.GreaterOrEqual(t, p.Pret, 0.0)
				for _, f := range s.Fields {
					v, ok := p.Fields[f.Name]
					if !ok {
						continue
					}
					assert.NoError(t, f.Validate(v), "product %s field %s", p.Cod, f.Name)
				}
			}
		}
	}
}

func TestDefaultDatabaseMaterialsHaveDerivedPrices(t *testing.T) {
	db := DefaultDatabase()
	require.NotEmpty(t, db.Materials)
	for _, m := range db.Materials {
		assert.Greater(t, m.PricePerSquareMeter, 0.0, m.ID)
		assert.InDelta(t, m.PricePerSheet/m.SheetAreaM2(), m.PricePerSquareMeter, 1e-9)
	}
}
