package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/partsflow/partsflow/services/bom/domain/models"
)

func offer(distributor, price string, stock int) models.Offer {
	return models.Offer{
		MPN:         "MPN-X",
		Price:       decimal.RequireFromString(price),
		Currency:    "USD",
		Stock:       stock,
		Provider:    "test",
		Distributor: distributor,
	}
}

func TestRealize(t *testing.T) {
	t.Run("no matched items yields no suggestions", func(t *testing.T) {
		items := []models.BomItem{
			models.NewBomItem("R1", "resistor", 10, "", ""),
			models.NewBomItem("C1", "capacitor", 5, "", ""),
		}

		result := Realize(items, map[uuid.UUID][]models.Offer{})
		if len(result.Suggestions) != 0 {
			t.Fatalf("got %d suggestions, want 0", len(result.Suggestions))
		}
		if len(result.UnmatchedItems) != 2 {
			t.Fatalf("got %d unmatched, want 2", len(result.UnmatchedItems))
		}
	})

	t.Run("matched plus unmatched equals input", func(t *testing.T) {
		items := []models.BomItem{
			models.NewBomItem("R1", "resistor", 10, "", ""),
			models.NewBomItem("C1", "capacitor", 5, "", ""),
			models.NewBomItem("U1", "mcu", 1, "", ""),
		}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {offer("Digi-Key", "0.05", 1000)},
			items[2].ID: {offer("Mouser", "3.50", 200)},
		}

		result := Realize(items, offers)
		if len(result.UnmatchedItems) != 1 || result.UnmatchedItems[0].PartNumber != "C1" {
			t.Fatalf("unmatched = %+v", result.UnmatchedItems)
		}
		for _, s := range result.Suggestions {
			if len(s.LineItems) != 2 {
				t.Errorf("suggestion %q covers %d items, want 2", s.Name, len(s.LineItems))
			}
		}
	})

	t.Run("identical assignments are deduplicated", func(t *testing.T) {
		// Single offer per item: all three strategies pick the same
		// configuration, so exactly one suggestion must survive.
		items := []models.BomItem{models.NewBomItem("R1", "resistor", 10, "", "")}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {offer("Digi-Key", "0.05", 1000)},
		}

		result := Realize(items, offers)
		if len(result.Suggestions) != 1 {
			t.Fatalf("got %d suggestions, want 1 after dedup", len(result.Suggestions))
		}
		if result.Suggestions[0].Name != StrategyCheapestOverall {
			t.Errorf("surviving suggestion = %q, want first strategy", result.Suggestions[0].Name)
		}
	})

	t.Run("strategies diverge on stock versus price", func(t *testing.T) {
		items := []models.BomItem{models.NewBomItem("R1", "resistor", 100, "", "")}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {
				offer("CheapButDry", "0.01", 0),
				offer("Stocked", "0.03", 50000),
			},
		}

		result := Realize(items, offers)
		if len(result.Suggestions) != 2 {
			t.Fatalf("got %d suggestions, want 2", len(result.Suggestions))
		}

		// Cheapest-overall and stock-optimized both settle on the covering
		// offer; the single-distributor candidate falls back to the dry one.
		// The in-stock configuration must outrank it.
		top := result.Suggestions[0]
		if !top.AllInStock {
			t.Errorf("top suggestion not fully in stock: %+v", top)
		}
		if top.Score < result.Suggestions[1].Score {
			t.Errorf("suggestions not sorted by score: %v then %v", top.Score, result.Suggestions[1].Score)
		}
	})

	t.Run("single distributor consolidation", func(t *testing.T) {
		items := []models.BomItem{
			models.NewBomItem("R1", "resistor", 10, "", ""),
			models.NewBomItem("C1", "capacitor", 5, "", ""),
		}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {
				offer("Digi-Key", "0.05", 1000),
				offer("Mouser", "0.04", 1000),
			},
			items[1].ID: {
				offer("Digi-Key", "0.10", 1000),
				offer("Mouser", "0.12", 1000),
			},
		}

		result := Realize(items, offers)

		var single *models.RealizedBom
		for i := range result.Suggestions {
			if result.Suggestions[i].Name == StrategySingleDistributor {
				single = &result.Suggestions[i]
			}
		}
		if single == nil {
			t.Fatal("no single-distributor suggestion produced")
		}
		if len(single.Distributors) != 1 {
			t.Fatalf("single-distributor config uses %v", single.Distributors)
		}
		// Mouser total: 0.04*10 + 0.12*5 = 1.00; Digi-Key: 0.05*10 + 0.10*5 = 1.00.
		// Equal cost, so the name tiebreak picks Digi-Key.
		if single.Distributors[0] != "Digi-Key" {
			t.Errorf("chosen distributor = %q, want Digi-Key", single.Distributors[0])
		}
	})

	t.Run("more stock coverage never scores lower", func(t *testing.T) {
		items := []models.BomItem{
			models.NewBomItem("R1", "resistor", 10, "", ""),
			models.NewBomItem("C1", "capacitor", 10, "", ""),
		}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {offer("A", "1.00", 100), offer("B", "1.00", 0)},
			items[1].ID: {offer("A", "1.00", 100), offer("B", "1.00", 0)},
		}

		result := Realize(items, offers)
		for i := 1; i < len(result.Suggestions); i++ {
			prev, cur := result.Suggestions[i-1], result.Suggestions[i]
			if prev.Score < cur.Score {
				t.Fatalf("ordering violated: %v before %v", prev.Score, cur.Score)
			}
		}
		top := result.Suggestions[0]
		if !top.AllInStock {
			t.Errorf("fully stocked configuration should rank first, got %+v", top)
		}
	})

	t.Run("line economics use price breaks", func(t *testing.T) {
		item := models.NewBomItem("R1", "10k resistor", 10, "Yageo", "RC0603FR-0710KL")
		o := offer("Digi-Key", "0.05", 5000)
		o.PriceBreaks = []models.PriceBreak{
			{Quantity: 1, Price: decimal.RequireFromString("0.10")},
			{Quantity: 10, Price: decimal.RequireFromString("0.05")},
			{Quantity: 100, Price: decimal.RequireFromString("0.02")},
		}

		result := Realize([]models.BomItem{item}, map[uuid.UUID][]models.Offer{item.ID: {o}})
		if len(result.Suggestions) == 0 {
			t.Fatal("no suggestion produced")
		}
		li := result.Suggestions[0].LineItems[0]
		if li.UnitPrice.String() != "0.05" {
			t.Errorf("unit price = %s, want tier 0.05 at qty 10", li.UnitPrice)
		}
		if li.LineTotal.String() != "0.5" {
			t.Errorf("line total = %s, want 0.5", li.LineTotal)
		}
		if !li.InStock {
			t.Error("line should be in stock")
		}
	})

	t.Run("scoring is deterministic", func(t *testing.T) {
		items := []models.BomItem{models.NewBomItem("R1", "resistor", 10, "", "")}
		offers := map[uuid.UUID][]models.Offer{
			items[0].ID: {offer("Digi-Key", "0.05", 1000), offer("Mouser", "0.06", 2000)},
		}

		first := Realize(items, offers)
		second := Realize(items, offers)
		if len(first.Suggestions) != len(second.Suggestions) {
			t.Fatalf("run sizes differ: %d vs %d", len(first.Suggestions), len(second.Suggestions))
		}
		for i := range first.Suggestions {
			if first.Suggestions[i].Score != second.Suggestions[i].Score {
				t.Errorf("suggestion %d score differs: %v vs %v", i,
					first.Suggestions[i].Score, second.Suggestions[i].Score)
			}
			if first.Suggestions[i].Name != second.Suggestions[i].Name {
				t.Errorf("suggestion %d name differs", i)
			}
		}
	})
}
