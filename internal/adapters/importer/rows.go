// Package importer maps spreadsheet-style product rows (CSV or XLSX) onto a
// subcategory of the catalog and renders quote/catalog exports.
package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ofertare/mobila/internal/domain"
)

// Report counts the outcome of one row import. Skipped rows are reported as
// counts, not individually; a bad row never aborts the batch.
type Report struct {
	Added            int `json:"added"`
	SkippedInvalid   int `json:"skippedInvalid"`
	SkippedDuplicate int `json:"skippedDuplicate"`
}

// Column aliases accepted for the two required columns, case-insensitive.
var (
	codAliases  = []string{"cod", "cod produs"}
	pretAliases = []string{"pret", "pret unitar"}
)

func matchAlias(header string, aliases []string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, a := range aliases {
		if h == a {
			return true
		}
	}
	return false
}

// ImportRows appends one product per data row to the given subcategory. Every
// row must resolve a cod and a pret column; rows missing either are dropped,
// rows whose cod already exists in the subcategory (or earlier in the batch)
// are skipped as duplicates.
func ImportRows(db domain.Database, category, sub string, header []string, rows [][]string) (domain.Database, Report, error) {
	var rep Report

	subSpec, err := findSubcategory(db, category, sub)
	if err != nil {
		return db, rep, err
	}

	codIdx, pretIdx := -1, -1
	for i, h := range header {
		switch {
		case codIdx < 0 && matchAlias(h, codAliases):
			codIdx = i
		case pretIdx < 0 && matchAlias(h, pretAliases):
			pretIdx = i
		}
	}
	if codIdx < 0 || pretIdx < 0 {
		return db, rep, fmt.Errorf("%w: header must contain cod and pret columns", domain.ErrInvalidFormat)
	}

	specsByName := make(map[string]domain.FieldSpec, len(subSpec.Fields))
	for _, f := range subSpec.Fields {
		specsByName[strings.ToLower(f.Name)] = f
	}

	seen := make(map[string]struct{}, len(subSpec.Products))
	for _, p := range subSpec.Products {
		seen[p.Cod] = struct{}{}
	}

	base := time.Now()
	for i, row := range rows {
		cod := cell(row, codIdx)
		pret, perr := parseNumber(cell(row, pretIdx))
		if cod == "" || perr != nil {
			rep.SkippedInvalid++
			continue
		}
		if _, dup := seen[cod]; dup {
			rep.SkippedDuplicate++
			continue
		}

		p := domain.Product{
			ID:     domain.NewProductID(base.Add(time.Duration(i) * time.Millisecond)),
			Cod:    cod,
			Pret:   pret,
			Fields: map[string]any{},
		}
		for ci, h := range header {
			if ci == codIdx || ci == pretIdx {
				continue
			}
			spec, ok := specsByName[strings.ToLower(strings.TrimSpace(h))]
			if !ok {
				continue
			}
			raw := cell(row, ci)
			if raw == "" {
				continue
			}
			p.Fields[spec.Name] = convertField(spec, raw)
		}

		next, err := db.AddProduct(category, sub, p)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidProduct) {
				rep.SkippedInvalid++
				continue
			}
			return db, rep, err
		}
		db = next
		seen[cod] = struct{}{}
		rep.Added++
	}

	log.Info().
		Str("category", category).
		Str("subcategory", sub).
		Int("added", rep.Added).
		Int("skipped_invalid", rep.SkippedInvalid).
		Int("skipped_duplicate", rep.SkippedDuplicate).
		Msg("product rows imported")
	return db, rep, nil
}

func findSubcategory(db domain.Database, category, sub string) (domain.Subcategory, error) {
	for _, c := range db.Categories {
		if c.Name != category {
			continue
		}
		for _, s := range c.Subcategories {
			if s.Name == sub {
				return s, nil
			}
		}
		return domain.Subcategory{}, fmt.Errorf("%w: subcategory %q in %q", domain.ErrNotFound, sub, category)
	}
	return domain.Subcategory{}, fmt.Errorf("%w: category %q", domain.ErrNotFound, category)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts both dot and comma decimal separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	return strconv.ParseFloat(s, 64)
}

// convertField coerces a raw cell to the field's declared type, keeping the
// raw string when the value does not parse so nothing is lost on import.
func convertField(spec domain.FieldSpec, raw string) any {
	switch spec.Type {
	case domain.FieldNumber:
		if n, err := parseNumber(raw); err == nil {
			return n
		}
	case domain.FieldBoolean:
		switch strings.ToLower(raw) {
		case "true", "da", "1", "x":
			return true
		case "false", "nu", "0", "":
			return false
		}
	}
	return raw
}
