package importer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ofertare/mobila/internal/domain"
)

func importFixture() domain.Database {
	return domain.Database{
		Categories: []domain.Category{
			{
				Name: "Accesorii",
				Subcategories: []domain.Subcategory{
					{
						Name: "Glisiere",
						Fields: []domain.FieldSpec{
							{Name: "nume", Type: domain.FieldText},
							{Name: "lungime", Type: domain.FieldNumber},
						},
						Products: []domain.Product{
							{ID: "1", Cod: "GL-450", Pret: 18, Fields: map[string]any{"nume": "existenta"}},
						},
					},
				},
			},
		},
	}.Normalize()
}

func subProducts(db domain.Database) []domain.Product {
	return db.Categories[0].Subcategories[0].Products
}

func TestImportCSVHeaderAliases(t *testing.T) {
	csv := strings.Join([]string{
		"Cod Produs,Pret Unitar,Nume,Lungime",
		"GL-500,21.5,Glisiera 500,500",
		"GL-550,\"23,9\",Glisiera 550,550",
	}, "\n")

	db, rep, err := ImportCSV(importFixture(), "Accesorii", "Glisiere", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, Report{Added: 2}, rep)

	prods := subProducts(db)
	require.Len(t, prods, 3)
	assert.Equal(t, "GL-500", prods[1].Cod)
	assert.InDelta(t, 21.5, prods[1].Pret, 1e-9)
	assert.Equal(t, 500.0, prods[1].Fields["lungime"], "number columns coerce to float")
	assert.InDelta(t, 23.9, prods[2].Pret, 1e-9, "comma decimals are accepted")
}

func TestImportCSVSkipCounts(t *testing.T) {
	csv := strings.Join([]string{
		"cod,pret",
		"GL-500,21.5",
		",10",          // missing cod
		"GL-501,abc",   // unparsable pret
		"GL-450,30",    // duplicate of an existing product
		"GL-500,99",    // duplicate within the batch
	}, "\n")

	db, rep, err := ImportCSV(importFixture(), "Accesorii", "Glisiere", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, Report{Added: 1, SkippedInvalid: 2, SkippedDuplicate: 2}, rep)
	assert.Len(t, subProducts(db), 2)
}

func TestImportCSVMissingRequiredColumns(t *testing.T) {
	csv := "nume,pret\nGlisiera,20"
	db := importFixture()

	got, _, err := ImportCSV(db, "Accesorii", "Glisiere", strings.NewReader(csv))
	require.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.Equal(t, db, got, "failed import returns the input unchanged")
}

func TestImportCSVUnknownTarget(t *testing.T) {
	csv := "cod,pret\nGL-500,21.5"

	_, _, err := ImportCSV(importFixture(), "Accesorii", "Feronerie", strings.NewReader(csv))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = ImportCSV(importFixture(), "Mobilier", "Glisiere", strings.NewReader(csv))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReadCSVStripsBOM(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader("\uFEFFcod,pret\nGL-1,5"))
	require.NoError(t, err)
	assert.Equal(t, []string{"cod", "pret"}, header)
	require.Len(t, rows, 1)
}

func TestReadCSVToleratesRaggedRows(t *testing.T) {
	header, rows, err := ReadCSV(strings.NewReader("cod,pret,nume\nGL-1,5\nGL-2,6,Glisiera,extra"))
	require.NoError(t, err)
	assert.Len(t, header, 3)
	assert.Len(t, rows, 2)
}

func TestExportSubcategoryCSVRoundTrip(t *testing.T) {
	db := importFixture()
	db, rep, err := ImportCSV(db, "Accesorii", "Glisiere", strings.NewReader("cod,pret,lungime\nGL-600,25,600"))
	require.NoError(t, err)
	require.Equal(t, 1, rep.Added)

	var buf bytes.Buffer
	require.NoError(t, ExportSubcategoryCSV(db, "Accesorii", "Glisiere", &buf))

	header, rows, err := ReadCSV(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, []string{"cod", "pret", "nume", "lungime"}, header)
	require.Len(t, rows, 2)
	assert.Equal(t, "GL-600", rows[1][0])
	assert.Equal(t, "25", rows[1][1])
	assert.Equal(t, "600", rows[1][3])
}
