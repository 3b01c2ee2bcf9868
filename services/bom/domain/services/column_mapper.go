// Package services contains stateless domain services for the bom bounded
// context: CSV column mapping and BOM realization. Domain services operate
// purely on domain types and have no external dependencies beyond stdlib and
// the domain layer.
package services

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// fieldAliases holds the ordered list of accepted header aliases per canonical
// field, lower-cased and trimmed. Matching is first-alias-wins: an earlier
// alias beats a later one when multiple headers match. The list is open;
// extend it as new BOM dialects show up; unrecognized columns are ignored,
// never errors.
var fieldAliases = []struct {
	field   string
	aliases []string
}{
	{models.FieldMPN, []string{"mpn", "manufacturer part number", "mfr part number", "mfg part number", "mfr part no", "manufacturer pn"}},
	{models.FieldPartNumber, []string{"part number", "part no", "part#", "p/n", "partnum", "part"}},
	{models.FieldDescription, []string{"description", "desc", "item description", "part description", "value"}},
	{models.FieldQuantity, []string{"quantity", "qty", "count", "amount"}},
	{models.FieldManufacturer, []string{"manufacturer", "mfr", "mfg", "brand", "make"}},
}

// MapColumns resolves arbitrary human-authored CSV headers to the canonical
// item schema. For each field the headers are scanned in their original order
// and the first header whose normalized form equals an alias, or contains one
// as a substring, wins; earlier aliases take precedence over later ones when
// several headers match. A header claimed by one field is never reused for a
// later field. MPN is resolved first so "Mfr Part Number" cannot be stolen
// by the part-number aliases.
func MapColumns(headers []string) models.ColumnMapping {
	var mapping models.ColumnMapping
	claimed := make(map[string]bool, len(headers))
	for _, fa := range fieldAliases {
		header := matchHeader(headers, fa.aliases, claimed)
		if header != "" {
			claimed[header] = true
		}
		switch fa.field {
		case models.FieldPartNumber:
			mapping.PartNumber = header
		case models.FieldDescription:
			mapping.Description = header
		case models.FieldQuantity:
			mapping.Quantity = header
		case models.FieldManufacturer:
			mapping.Manufacturer = header
		case models.FieldMPN:
			mapping.MPN = header
		}
	}
	return mapping
}

func matchHeader(headers []string, aliases []string, claimed map[string]bool) string {
	for _, alias := range aliases {
		for _, h := range headers {
			if claimed[h] {
				continue
			}
			n := normalizeHeader(h)
			if n == alias || strings.Contains(n, alias) {
				return h
			}
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

// ParseBom parses raw CSV text into BOM items. The first record is the header
// row; columns are resolved via MapColumns. Rows with no part number,
// description, or MPN are dropped as noise. Returns ErrUnparsableBom when the
// text is not CSV and ErrEmptyBom when no line items survive.
func ParseBom(rawText string) ([]models.BomItem, models.ColumnMapping, error) {
	trimmed := strings.TrimSpace(rawText)
	if trimmed == "" {
		return nil, models.ColumnMapping{}, domain.ErrEmptyBom
	}

	reader := csv.NewReader(strings.NewReader(trimmed))
	reader.FieldsPerRecord = -1 // ragged rows are tolerated
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, models.ColumnMapping{}, fmt.Errorf("%w: %w", domain.ErrUnparsableBom, err)
	}
	if len(records) < 2 {
		return nil, models.ColumnMapping{}, domain.ErrEmptyBom
	}

	headers := records[0]
	mapping := MapColumns(headers)

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	items := make([]models.BomItem, 0, len(records)-1)
	for _, row := range records[1:] {
		item := models.NewBomItem(
			cell(row, index, mapping.PartNumber),
			cell(row, index, mapping.Description),
			parseQuantity(cell(row, index, mapping.Quantity)),
			cell(row, index, mapping.Manufacturer),
			cell(row, index, mapping.MPN),
		)
		if item.IsNoise() {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		return nil, mapping, domain.ErrEmptyBom
	}
	return items, mapping, nil
}

// cell returns the trimmed value of the mapped header for this row, or ""
// when the field mapped to nothing or the row is too short.
func cell(row []string, index map[string]int, header string) string {
	if header == "" {
		return ""
	}
	i, ok := index[header]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseQuantity converts free-text quantity to a positive integer. Malformed
// or missing quantities degrade to 1; they must never fail a parse.
func parseQuantity(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 1
	}
	if q, err := strconv.Atoi(s); err == nil && q >= 1 {
		return q
	}
	// "4.0" style quantities from spreadsheet exports
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 1 {
		return int(f)
	}
	return 1
}
