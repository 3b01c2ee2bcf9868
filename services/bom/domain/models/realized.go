package models

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RealizedLineItem binds one BOM item to the offer chosen for it in a
// particular configuration.
type RealizedLineItem struct {
	Item      BomItem         `json:"bom_item"`
	Offer     Offer           `json:"offer"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
	InStock   bool            `json:"in_stock"`
}

// NewRealizedLineItem derives the line economics from the item quantity and
// the offer's price ladder.
func NewRealizedLineItem(item BomItem, offer Offer) RealizedLineItem {
	unit := offer.UnitPriceAt(item.Quantity)
	return RealizedLineItem{
		Item:      item,
		Offer:     offer,
		UnitPrice: unit,
		LineTotal: unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
		InStock:   offer.Covers(item.Quantity),
	}
}

// RealizedBom is one complete, priced, stock-checked purchasing configuration
// covering every matched line item. Sibling configurations from the same run
// are mutually independent and share no mutable state.
type RealizedBom struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Score        float64            `json:"score"`
	LineItems    []RealizedLineItem `json:"line_items"`
	TotalCost    decimal.Decimal    `json:"total_cost"`
	Distributors []string           `json:"distributors"`
	AllInStock   bool               `json:"all_in_stock"`
}

// NewRealizedBom assembles a configuration from chosen line items, computing
// the derived totals. Score is assigned afterwards by the realization engine,
// relative to the sibling configurations of the same run.
func NewRealizedBom(name, description string, lineItems []RealizedLineItem) RealizedBom {
	total := decimal.Zero
	allInStock := true
	distinct := make(map[string]struct{})
	for _, li := range lineItems {
		total = total.Add(li.LineTotal)
		allInStock = allInStock && li.InStock
		distinct[li.Offer.Distributor] = struct{}{}
	}

	distributors := make([]string, 0, len(distinct))
	for d := range distinct {
		distributors = append(distributors, d)
	}
	sort.Strings(distributors)

	return RealizedBom{
		ID:           uuid.New(),
		Name:         name,
		Description:  description,
		LineItems:    lineItems,
		TotalCost:    total,
		Distributors: distributors,
		AllInStock:   allInStock,
	}
}

// AssignmentKey fingerprints the item → offer assignment so strategies that
// produce identical configurations can be de-duplicated. Line items are kept
// in canonical input order, so the concatenation is stable.
func (b RealizedBom) AssignmentKey() string {
	key := ""
	for _, li := range b.LineItems {
		key += li.Item.ID.String() + "=" + li.Offer.Key() + ";"
	}
	return key
}
