package models

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// PriceBreak is one tier of a distributor's quantity pricing.
type PriceBreak struct {
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Offer is a normalized, provider-agnostic sellable unit for a part.
// Offers are ephemeral: produced per search call, never persisted as entities.
// Price is the lowest available tier; PriceBreaks carries the full ladder when
// the provider exposes one.
type Offer struct {
	MPN                   string          `json:"mpn"`
	Manufacturer          string          `json:"manufacturer"`
	Description           string          `json:"description"`
	Price                 decimal.Decimal `json:"price"`
	Currency              string          `json:"currency"`
	Stock                 int             `json:"stock"`
	MinOrderQuantity      int             `json:"min_order_quantity"`
	Provider              string          `json:"provider"`
	Distributor           string          `json:"distributor"`
	DistributorPartNumber string          `json:"distributor_part_number,omitempty"`
	URL                   string          `json:"url"`
	PriceBreaks           []PriceBreak    `json:"price_breaks,omitempty"`
}

// Key returns a stable identity for de-duplicating line-item assignments.
// Two offers from the same provider/distributor for the same part at the same
// price are interchangeable for configuration purposes.
func (o Offer) Key() string {
	return fmt.Sprintf("%s|%s|%s|%s", o.Provider, o.Distributor, o.MPN, o.Price.String())
}

// UnitPriceAt returns the unit price applicable when ordering qty units:
// the highest price-break tier at or below qty, or the representative Price
// when the offer carries no break ladder.
func (o Offer) UnitPriceAt(qty int) decimal.Decimal {
	if len(o.PriceBreaks) == 0 {
		return o.Price
	}
	best := o.PriceBreaks[0]
	found := false
	for _, pb := range o.PriceBreaks {
		if pb.Quantity <= qty && (!found || pb.Quantity > best.Quantity) {
			best = pb
			found = true
		}
	}
	if !found {
		return o.PriceBreaks[0].Price
	}
	return best.Price
}

// Covers reports whether the offer's stock satisfies the needed quantity.
func (o Offer) Covers(qty int) bool {
	return o.Stock >= qty
}

// SortOffers orders offers ascending by price, ties broken by provider name
// then distributor so merged result lists are deterministic.
func SortOffers(offers []Offer) {
	sort.SliceStable(offers, func(i, j int) bool {
		if c := offers[i].Price.Cmp(offers[j].Price); c != 0 {
			return c < 0
		}
		if offers[i].Provider != offers[j].Provider {
			return offers[i].Provider < offers[j].Provider
		}
		return offers[i].Distributor < offers[j].Distributor
	})
}
