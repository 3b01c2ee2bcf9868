package models

// Canonical BOM fields recognized by the column mapper.
const (
	FieldPartNumber   = "partNumber"
	FieldDescription  = "description"
	FieldQuantity     = "quantity"
	FieldManufacturer = "manufacturer"
	FieldMPN          = "mpn"
)

// ColumnMapping records which raw CSV header was matched for each canonical
// field. An empty string means no header matched and the field is populated
// with its default for every row. Derived once per input; diagnostic only.
type ColumnMapping struct {
	PartNumber   string `json:"part_number"`
	Description  string `json:"description"`
	Quantity     string `json:"quantity"`
	Manufacturer string `json:"manufacturer"`
	MPN          string `json:"mpn"`
}

// Matched reports whether the given canonical field resolved to a header.
func (m ColumnMapping) Matched(field string) bool {
	switch field {
	case FieldPartNumber:
		return m.PartNumber != ""
	case FieldDescription:
		return m.Description != ""
	case FieldQuantity:
		return m.Quantity != ""
	case FieldManufacturer:
		return m.Manufacturer != ""
	case FieldMPN:
		return m.MPN != ""
	}
	return false
}
