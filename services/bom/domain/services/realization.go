package services

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// Strategy names. Each produces one candidate configuration over the matched
// items; identical assignments are de-duplicated before scoring.
const (
	StrategyCheapestOverall   = "cheapest-overall"
	StrategySingleDistributor = "single-distributor-preferred"
	StrategyStockOptimized    = "stock-optimized"
)

// Scoring weights. The required property is monotonicity (more in-stock
// items never scores lower, a cheaper configuration with the same stock
// coverage never scores lower), not any particular split.
const (
	weightStock        = 0.45
	weightCost         = 0.35
	weightConsolidated = 0.20
)

// RealizationResult is the engine's output: ranked configurations over the
// matched items plus the items no provider could offer.
type RealizationResult struct {
	Suggestions    []models.RealizedBom
	UnmatchedItems []models.BomItem
}

// Realize synthesizes scored purchasing configurations from per-item offer
// sets. Items with no offers are partitioned out first and excluded from all
// strategies; if nothing remains, the result has no suggestions and every
// input item is unmatched.
func Realize(items []models.BomItem, offersByItem map[uuid.UUID][]models.Offer) RealizationResult {
	matched := make([]models.BomItem, 0, len(items))
	unmatched := make([]models.BomItem, 0)
	for _, item := range items {
		if len(offersByItem[item.ID]) == 0 {
			unmatched = append(unmatched, item)
			continue
		}
		matched = append(matched, item)
	}

	if len(matched) == 0 {
		return RealizationResult{UnmatchedItems: unmatched}
	}

	candidates := make([]models.RealizedBom, 0, 3)
	candidates = append(candidates, cheapestOverall(matched, offersByItem))
	if bom, ok := singleDistributorPreferred(matched, offersByItem); ok {
		candidates = append(candidates, bom)
	}
	candidates = append(candidates, stockOptimized(matched, offersByItem))

	suggestions := dedupe(candidates)
	scoreSuggestions(suggestions)
	sortSuggestions(suggestions)

	return RealizationResult{Suggestions: suggestions, UnmatchedItems: unmatched}
}

// cheapestOverall picks, per item, the lowest-price offer that covers the
// needed quantity, falling back to the lowest-price offer regardless of stock
// when none does.
func cheapestOverall(items []models.BomItem, offersByItem map[uuid.UUID][]models.Offer) models.RealizedBom {
	lineItems := make([]models.RealizedLineItem, 0, len(items))
	for _, item := range items {
		offers := offersByItem[item.ID]
		chosen, ok := cheapest(offers, func(o models.Offer) bool { return o.Covers(item.Quantity) })
		if !ok {
			chosen, _ = cheapest(offers, nil)
		}
		lineItems = append(lineItems, models.NewRealizedLineItem(item, chosen))
	}
	return models.NewRealizedBom(
		StrategyCheapestOverall,
		"Lowest total cost, mixing distributors freely",
		lineItems,
	)
}

// singleDistributorPreferred finds the distributor that can cover every
// matched item at the lowest total cost. Omitted when no single distributor
// covers all items.
func singleDistributorPreferred(items []models.BomItem, offersByItem map[uuid.UUID][]models.Offer) (models.RealizedBom, bool) {
	// Distributors that offer something for the first item bound the search.
	covering := make(map[string]bool)
	for _, o := range offersByItem[items[0].ID] {
		covering[o.Distributor] = true
	}
	for _, item := range items[1:] {
		seen := make(map[string]bool)
		for _, o := range offersByItem[item.ID] {
			seen[o.Distributor] = true
		}
		for d := range covering {
			if !seen[d] {
				delete(covering, d)
			}
		}
	}
	if len(covering) == 0 {
		return models.RealizedBom{}, false
	}

	var best models.RealizedBom
	found := false
	for distributor := range covering {
		lineItems := make([]models.RealizedLineItem, 0, len(items))
		for _, item := range items {
			offers := fromDistributor(offersByItem[item.ID], distributor)
			chosen, ok := cheapest(offers, func(o models.Offer) bool { return o.Covers(item.Quantity) })
			if !ok {
				chosen, _ = cheapest(offers, nil)
			}
			lineItems = append(lineItems, models.NewRealizedLineItem(item, chosen))
		}
		candidate := models.NewRealizedBom(
			StrategySingleDistributor,
			"Every item from "+distributor+" to consolidate shipping",
			lineItems,
		)
		if !found || candidate.TotalCost.LessThan(best.TotalCost) ||
			(candidate.TotalCost.Equal(best.TotalCost) && distributor < best.Distributors[0]) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// stockOptimized picks, per item, the offer with the deepest stock,
// tie-broken by lowest price.
func stockOptimized(items []models.BomItem, offersByItem map[uuid.UUID][]models.Offer) models.RealizedBom {
	lineItems := make([]models.RealizedLineItem, 0, len(items))
	for _, item := range items {
		offers := offersByItem[item.ID]
		chosen := offers[0]
		for _, o := range offers[1:] {
			if o.Stock > chosen.Stock ||
				(o.Stock == chosen.Stock && o.Price.LessThan(chosen.Price)) {
				chosen = o
			}
		}
		lineItems = append(lineItems, models.NewRealizedLineItem(item, chosen))
	}
	return models.NewRealizedBom(
		StrategyStockOptimized,
		"Deepest stock per item to minimize shortage risk",
		lineItems,
	)
}

// cheapest returns the lowest-price offer satisfying the filter (nil filter
// accepts all). The bool result is false when no offer passes.
func cheapest(offers []models.Offer, accept func(models.Offer) bool) (models.Offer, bool) {
	var best models.Offer
	found := false
	for _, o := range offers {
		if accept != nil && !accept(o) {
			continue
		}
		if !found || o.Price.LessThan(best.Price) {
			best = o
			found = true
		}
	}
	return best, found
}

func fromDistributor(offers []models.Offer, distributor string) []models.Offer {
	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if o.Distributor == distributor {
			out = append(out, o)
		}
	}
	return out
}

// dedupe drops configurations whose line-item assignment is identical to an
// earlier strategy's; the same configuration is never presented twice under
// two names.
func dedupe(candidates []models.RealizedBom) []models.RealizedBom {
	seen := make(map[string]bool, len(candidates))
	out := make([]models.RealizedBom, 0, len(candidates))
	for _, c := range candidates {
		key := c.AssignmentKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// scoreSuggestions assigns each configuration a 0–100 score from its in-stock
// fraction, its total cost relative to the cheapest sibling of this run, and
// a consolidation bonus for fewer distinct distributors. Scores are only
// comparable within a single run.
func scoreSuggestions(suggestions []models.RealizedBom) {
	if len(suggestions) == 0 {
		return
	}

	minCost := suggestions[0].TotalCost
	for _, s := range suggestions[1:] {
		if s.TotalCost.LessThan(minCost) {
			minCost = s.TotalCost
		}
	}

	for i := range suggestions {
		s := &suggestions[i]

		inStock := 0
		for _, li := range s.LineItems {
			if li.InStock {
				inStock++
			}
		}
		stockFrac := float64(inStock) / float64(len(s.LineItems))

		costScore := 1.0
		if s.TotalCost.IsPositive() {
			costScore, _ = minCost.Div(s.TotalCost).Float64()
		}

		consolidation := 1.0 / float64(len(s.Distributors))

		score := 100 * (weightStock*stockFrac + weightCost*costScore + weightConsolidated*consolidation)
		s.Score = math.Round(score*10) / 10
	}
}

// sortSuggestions orders descending by score, ties broken by ascending total
// cost, then by name for full determinism.
func sortSuggestions(suggestions []models.RealizedBom) {
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if c := a.TotalCost.Cmp(b.TotalCost); c != 0 {
			return c < 0
		}
		return a.Name < b.Name
	})
}
