package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ofertare/mobila/internal/domain"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestImportXLSX(t *testing.T) {
	data := workbookBytes(t, [][]any{
		{"cod", "pret", "lungime"},
		{"GL-700", 32.5, 700},
		{"GL-750", "34,9", 750},
	})

	db, rep, err := ImportXLSX(importFixture(), "Accesorii", "Glisiere", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, Report{Added: 2}, rep)

	prods := subProducts(db)
	require.Len(t, prods, 3)
	assert.Equal(t, "GL-700", prods[1].Cod)
	assert.InDelta(t, 32.5, prods[1].Pret, 1e-9)
	assert.Equal(t, 700.0, prods[1].Fields["lungime"])
	assert.InDelta(t, 34.9, prods[2].Pret, 1e-9)
}

func TestImportXLSXNotAWorkbook(t *testing.T) {
	db := importFixture()
	got, _, err := ImportXLSX(db, "Accesorii", "Glisiere", bytes.NewReader([]byte("plain text")))
	require.ErrorIs(t, err, domain.ErrInvalidFormat)
	assert.Equal(t, db, got)
}

func TestExportQuoteXLSX(t *testing.T) {
	q := domain.NewQuote().
		AddItem(domain.QuoteItem{
			CategoryName:    "Accesorii",
			SubcategoryName: "Glisiere",
			Quantity:        3,
			PricePerUnit:    100,
			ProductDetails:  map[string]any{"nume": "Glisiera 450"},
		}).
		SetLaborPercentage(10)
	q.Title = "Oferta bucatarie"
	q.Beneficiary = "Popescu Ion"

	data, err := ExportQuoteXLSX(q)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Oferta", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Oferta bucatarie", title)

	name, err := f.GetCellValue("Oferta", "C5")
	require.NoError(t, err)
	assert.Equal(t, "Glisiera 450", name)

	lineTotal, err := f.GetCellValue("Oferta", "F5")
	require.NoError(t, err)
	assert.Equal(t, "300", lineTotal)

	total, err := f.GetCellValue("Oferta", "F9")
	require.NoError(t, err)
	assert.Equal(t, "330", total)
}

func TestExportCatalogXLSXSheetPerSubcategory(t *testing.T) {
	db := importFixture()
	data, err := ExportCatalogXLSX(db)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Equal(t, []string{"Accesorii - Glisiere"}, sheets)

	cod, err := f.GetCellValue(sheets[0], "A2")
	require.NoError(t, err)
	assert.Equal(t, "GL-450", cod)
}
