package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ofertare/mobila/internal/domain"
)

// ReadCSV parses a product CSV into a header and data rows. Ragged rows are
// tolerated; the importer treats missing cells as empty.
func ReadCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("%w: empty csv", domain.ErrInvalidFormat)
	}

	header := records[0]
	if len(header) > 0 {
		// strip a UTF-8 BOM left by spreadsheet exports
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	return header, records[1:], nil
}

// ImportCSV reads the CSV and applies ImportRows to the target subcategory.
func ImportCSV(db domain.Database, category, sub string, r io.Reader) (domain.Database, Report, error) {
	header, rows, err := ReadCSV(r)
	if err != nil {
		return db, Report{}, err
	}
	return ImportRows(db, category, sub, header, rows)
}

// ExportSubcategoryCSV renders the products of one subcategory with a cod,
// pret header followed by the subcategory's field columns.
func ExportSubcategoryCSV(db domain.Database, category, sub string, w io.Writer) error {
	s, err := findSubcategory(db, category, sub)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"cod", "pret"}
	for _, f := range s.Fields {
		header = append(header, f.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range s.Products {
		row := []string{p.Cod, formatNumber(p.Pret)}
		for _, f := range s.Fields {
			row = append(row, fieldString(p.Fields[f.Name]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
