package models

import (
	"github.com/google/uuid"
)

// BomItem is one line item of a parsed bill of materials. Items are immutable
// after construction; identity is a generated ID, never derived from content,
// so duplicate rows stay distinct items.
type BomItem struct {
	ID           uuid.UUID `json:"id"`
	PartNumber   string    `json:"part_number"`
	Description  string    `json:"description"`
	Quantity     int       `json:"quantity"`
	Manufacturer string    `json:"manufacturer,omitempty"`
	MPN          string    `json:"mpn,omitempty"`
}

// NewBomItem constructs a BomItem with a fresh ID. Quantities below 1
// (including unparseable input upstream) are clamped to 1.
func NewBomItem(partNumber, description string, quantity int, manufacturer, mpn string) BomItem {
	if quantity < 1 {
		quantity = 1
	}
	return BomItem{
		ID:           uuid.New(),
		PartNumber:   partNumber,
		Description:  description,
		Quantity:     quantity,
		Manufacturer: manufacturer,
		MPN:          mpn,
	}
}

// WithMPN returns a copy of the item carrying the identified MPN. The ID and
// every other field are preserved; the original item is left untouched.
func (i BomItem) WithMPN(mpn string) BomItem {
	i.MPN = mpn
	return i
}

// IsNoise reports whether the item carries no identifying content at all.
// A row with only a quantity is noise, not a line item.
func (i BomItem) IsNoise() bool {
	return i.PartNumber == "" && i.Description == "" && i.MPN == ""
}

// SearchQuery returns the best available search term for this item:
// MPN first, then part number, then the free-text description.
func (i BomItem) SearchQuery() string {
	if i.MPN != "" {
		return i.MPN
	}
	if i.PartNumber != "" {
		return i.PartNumber
	}
	return i.Description
}
