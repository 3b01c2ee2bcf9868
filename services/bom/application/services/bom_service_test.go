package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
	"github.com/partsflow/partsflow/services/bom/domain/providers"
	"github.com/partsflow/partsflow/services/bom/domain/repositories"
)

// memoryRepo is an in-memory ProjectRepository for pipeline tests.
type memoryRepo struct {
	saved []*models.Project
}

func (m *memoryRepo) Save(ctx context.Context, p *models.Project) error {
	m.saved = append(m.saved, p)
	return nil
}

func (m *memoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	for _, p := range m.saved {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, bomdomain.ErrProjectNotFound
}

func (m *memoryRepo) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Project, int, error) {
	return m.saved, len(m.saved), nil
}

var _ repositories.ProjectRepository = (*memoryRepo)(nil)

// fixedIdentifier answers every description with the same MPN.
type fixedIdentifier struct {
	mpn   string
	calls int
}

func (f *fixedIdentifier) IdentifyMPN(ctx context.Context, description string) (string, error) {
	f.calls++
	return f.mpn, nil
}

func newBomService(t *testing.T, adapters []providers.PartProvider, identifier providers.PartIdentifier, repo repositories.ProjectRepository) *BomService {
	t.Helper()
	search := NewSearchService(adapters, nil, time.Second, testLogger())
	return NewBomService(search, identifier, repo, testLogger())
}

func TestSuggest(t *testing.T) {
	csvText := "Part Number,Description,Qty,Manufacturer,MPN\n" +
		"R1,10k Resistor,10,Yageo,RC0603FR-0710KL\n"

	t.Run("end to end with offers", func(t *testing.T) {
		cheap := fakeOffer("mouser", "0.05", 5000)
		cheap.PriceBreaks = []models.PriceBreak{
			{Quantity: 1, Price: cheap.Price},
		}
		dear := fakeOffer("digikey", "0.07", 100)
		adapters := []providers.PartProvider{
			&fakeProvider{name: "mouser", configured: true, offers: []models.Offer{cheap}},
			&fakeProvider{name: "digikey", configured: true, offers: []models.Offer{dear}},
		}
		repo := &memoryRepo{}
		svc := newBomService(t, adapters, nil, repo)

		project, err := svc.Suggest(context.Background(), "proto", csvText, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if project.Status != models.ProjectStatusComplete {
			t.Errorf("status = %q, want complete", project.Status)
		}
		if len(project.Result.UnmatchedItems) != 0 {
			t.Errorf("unmatched = %+v, want none", project.Result.UnmatchedItems)
		}
		if len(project.Result.Suggestions) == 0 {
			t.Fatal("no suggestions produced")
		}

		top := project.Result.Suggestions[0]
		if len(top.LineItems) != 1 {
			t.Fatalf("top suggestion has %d line items, want 1", len(top.LineItems))
		}
		li := top.LineItems[0]
		if li.LineTotal.String() != "0.5" {
			t.Errorf("line total = %s, want 0.5 (0.05 x 10)", li.LineTotal)
		}
		if !top.AllInStock {
			t.Error("top suggestion should be fully in stock")
		}

		if len(repo.saved) != 1 || repo.saved[0].ID != project.ID {
			t.Errorf("project not persisted: %+v", repo.saved)
		}
	})

	t.Run("no offers anywhere", func(t *testing.T) {
		adapters := []providers.PartProvider{
			&fakeProvider{name: "mouser", configured: true},
		}
		repo := &memoryRepo{}
		svc := newBomService(t, adapters, nil, repo)

		project, err := svc.Suggest(context.Background(), "proto", csvText, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if project.Status != models.ProjectStatusNoOffers {
			t.Errorf("status = %q, want no_offers", project.Status)
		}
		if len(project.Result.Suggestions) != 0 {
			t.Errorf("got %d suggestions, want 0", len(project.Result.Suggestions))
		}
		if len(project.Result.UnmatchedItems) != 1 {
			t.Errorf("got %d unmatched, want 1", len(project.Result.UnmatchedItems))
		}
	})

	t.Run("parse errors surface", func(t *testing.T) {
		svc := newBomService(t, nil, nil, nil)

		_, err := svc.Suggest(context.Background(), "proto", "", nil)
		if !errors.Is(err, bomdomain.ErrEmptyBom) {
			t.Fatalf("got %v, want ErrEmptyBom", err)
		}
	})

	t.Run("unknown provider surfaces", func(t *testing.T) {
		adapters := []providers.PartProvider{
			&fakeProvider{name: "mouser", configured: true},
		}
		svc := newBomService(t, adapters, nil, nil)

		_, err := svc.Suggest(context.Background(), "proto", csvText, []string{"newark"})
		if !errors.Is(err, bomdomain.ErrUnknownProvider) {
			t.Fatalf("got %v, want ErrUnknownProvider", err)
		}
	})

	t.Run("enrichment fills missing mpn", func(t *testing.T) {
		noMPN := "Description,Qty\nARM Cortex-M3 MCU LQFP48,2\n"
		adapters := []providers.PartProvider{
			&fakeProvider{name: "mouser", configured: true, offers: []models.Offer{fakeOffer("mouser", "3.50", 100)}},
		}
		identifier := &fixedIdentifier{mpn: "STM32F103C8T6"}
		svc := newBomService(t, adapters, identifier, nil)

		project, err := svc.Suggest(context.Background(), "proto", noMPN, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identifier.calls != 1 {
			t.Errorf("identifier called %d times, want 1", identifier.calls)
		}
		if got := project.Result.OriginalItems[0].MPN; got != "STM32F103C8T6" {
			t.Errorf("item MPN = %q, want identified value", got)
		}
	})

	t.Run("enrichment rebuilds items without mutating the parsed slice", func(t *testing.T) {
		identifier := &fixedIdentifier{mpn: "LM358DR"}
		svc := newBomService(t, nil, identifier, nil)

		parsed := []models.BomItem{models.NewBomItem("U1", "dual op-amp SOIC-8", 4, "", "")}
		wantID := parsed[0].ID

		enriched := svc.enrich(context.Background(), parsed)

		if parsed[0].MPN != "" {
			t.Errorf("parsed item mutated: MPN = %q", parsed[0].MPN)
		}
		if enriched[0].MPN != "LM358DR" {
			t.Errorf("enriched MPN = %q, want %q", enriched[0].MPN, "LM358DR")
		}
		if enriched[0].ID != wantID {
			t.Errorf("enriched ID = %s, want %s", enriched[0].ID, wantID)
		}
		if enriched[0].Quantity != 4 || enriched[0].PartNumber != "U1" {
			t.Errorf("enriched item lost fields: %+v", enriched[0])
		}
	})

	t.Run("items with mpn skip enrichment", func(t *testing.T) {
		adapters := []providers.PartProvider{
			&fakeProvider{name: "mouser", configured: true, offers: []models.Offer{fakeOffer("mouser", "0.05", 5000)}},
		}
		identifier := &fixedIdentifier{mpn: "SHOULD-NOT-APPEAR"}
		svc := newBomService(t, adapters, identifier, nil)

		project, err := svc.Suggest(context.Background(), "proto", csvText, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if identifier.calls != 0 {
			t.Errorf("identifier called %d times, want 0", identifier.calls)
		}
		if got := project.Result.OriginalItems[0].MPN; got != "RC0603FR-0710KL" {
			t.Errorf("item MPN = %q, want original", got)
		}
	})
}
