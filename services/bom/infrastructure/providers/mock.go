package providers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// mockOffers returns deterministic offers for query, labeled so downstream
// consumers can tell them from live distributor data. Used by every adapter
// when it has no credentials and its mock fallback is enabled.
func mockOffers(provider, query string) []models.Offer {
	dk := models.Offer{
		MPN:                   query,
		Manufacturer:          "Mock Manufacturer",
		Description:           fmt.Sprintf("Mock part matching %q", query),
		Price:                 decimal.RequireFromString("1.50"),
		Currency:              "USD",
		Stock:                 5000,
		MinOrderQuantity:      1,
		Provider:              provider,
		Distributor:           "Digi-Key (mock)",
		DistributorPartNumber: query + "-DK",
		URL:                   "https://example.com/mock/" + provider,
		PriceBreaks: []models.PriceBreak{
			{Quantity: 1, Price: decimal.RequireFromString("1.50")},
			{Quantity: 10, Price: decimal.RequireFromString("1.20")},
			{Quantity: 100, Price: decimal.RequireFromString("0.80")},
			{Quantity: 1000, Price: decimal.RequireFromString("0.50")},
		},
	}

	mouser := models.Offer{
		MPN:                   query,
		Manufacturer:          "Mock Manufacturer",
		Description:           fmt.Sprintf("Mock part matching %q", query),
		Price:                 decimal.RequireFromString("1.55"),
		Currency:              "USD",
		Stock:                 3000,
		MinOrderQuantity:      1,
		Provider:              provider,
		Distributor:           "Mouser (mock)",
		DistributorPartNumber: query + "-MO",
		URL:                   "https://example.com/mock/" + provider,
		PriceBreaks: []models.PriceBreak{
			{Quantity: 1, Price: decimal.RequireFromString("1.55")},
			{Quantity: 10, Price: decimal.RequireFromString("1.25")},
			{Quantity: 100, Price: decimal.RequireFromString("0.85")},
		},
	}

	offers := []models.Offer{dk, mouser}
	models.SortOffers(offers)
	return offers
}
