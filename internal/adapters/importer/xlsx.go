package importer

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/ofertare/mobila/internal/domain"
)

// ImportXLSX reads the first sheet of a workbook and applies ImportRows to
// the target subcategory. The first non-empty row is the header.
func ImportXLSX(db domain.Database, category, sub string, r io.Reader) (domain.Database, Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return db, Report{}, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return db, Report{}, fmt.Errorf("%w: workbook has no sheets", domain.ErrInvalidFormat)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return db, Report{}, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	var header []string
	var data [][]string
	for _, row := range rows {
		if header == nil {
			if len(row) == 0 {
				continue
			}
			header = row
			continue
		}
		data = append(data, row)
	}
	if header == nil {
		return db, Report{}, fmt.Errorf("%w: workbook is empty", domain.ErrInvalidFormat)
	}
	return ImportRows(db, category, sub, header, data)
}

// ExportQuoteXLSX renders the quote as a printable workbook: one row per
// line item and the subtotal/labor/total block underneath. Money cells are
// rounded to two decimals at this boundary only.
func ExportQuoteXLSX(q domain.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Oferta"
	f.SetSheetName("Sheet1", sheet)

	title := q.Title
	if title == "" {
		title = "Oferta de pret"
	}
	_ = f.SetCellValue(sheet, "A1", title)
	if q.Beneficiary != "" {
		_ = f.SetCellValue(sheet, "A2", "Beneficiar: "+q.Beneficiary)
	}

	headerRow := 4
	for i, h := range []string{"Categorie", "Subcategorie", "Denumire", "Cantitate", "Pret unitar", "Total"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := headerRow + 1
	for _, it := range q.Items {
		name := it.ProductID
		if v, ok := it.ProductDetails["nume"].(string); ok && v != "" {
			name = v
		} else if v, ok := it.ProductDetails["name"].(string); ok && v != "" {
			name = v
		} else if v, ok := it.ProductDetails["descriere"].(string); ok && v != "" {
			name = v
		}
		values := []any{it.CategoryName, it.SubcategoryName, name, it.Quantity, round2(it.PricePerUnit), round2(it.Total)}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++
	_ = f.SetCellValue(sheet, "E"+strconv.Itoa(row), "Subtotal")
	_ = f.SetCellValue(sheet, "F"+strconv.Itoa(row), round2(q.Subtotal))
	row++
	_ = f.SetCellValue(sheet, "E"+strconv.Itoa(row), fmt.Sprintf("Manopera (%.0f%%)", q.LaborPercentage))
	_ = f.SetCellValue(sheet, "F"+strconv.Itoa(row), round2(q.LaborCost))
	row++
	_ = f.SetCellValue(sheet, "E"+strconv.Itoa(row), "Total")
	_ = f.SetCellValue(sheet, "F"+strconv.Itoa(row), round2(q.Total))

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportCatalogXLSX renders every subcategory on its own sheet with the
// cod/pret columns followed by the subcategory's field columns.
func ExportCatalogXLSX(db domain.Database) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, c := range db.Categories {
		for _, s := range c.Subcategories {
			sheet := sheetName(c.Name + " - " + s.Name)
			if first {
				f.SetSheetName("Sheet1", sheet)
				first = false
			} else if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}

			header := []string{"cod", "pret"}
			for _, fs := range s.Fields {
				header = append(header, fs.Name)
			}
			for i, h := range header {
				cell, _ := excelize.CoordinatesToCellName(i+1, 1)
				_ = f.SetCellValue(sheet, cell, h)
			}
			for ri, p := range s.Products {
				values := []any{p.Cod, round2(p.Pret)}
				for _, fs := range s.Fields {
					values = append(values, fieldString(p.Fields[fs.Name]))
				}
				for ci, v := range values {
					cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
					_ = f.SetCellValue(sheet, cell, v)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// round2 rounds money values half-up to two decimals for presentation.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

func fieldString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return decimal.NewFromFloat(t).String()
	default:
		return fmt.Sprint(t)
	}
}

// sheetName trims a candidate sheet name to excel's 31-character limit.
func sheetName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
