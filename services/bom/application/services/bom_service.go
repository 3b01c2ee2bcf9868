package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/partsflow/partsflow/pkg/logger"
	"github.com/partsflow/partsflow/services/bom/domain/models"
	"github.com/partsflow/partsflow/services/bom/domain/providers"
	"github.com/partsflow/partsflow/services/bom/domain/repositories"
	domainsvcs "github.com/partsflow/partsflow/services/bom/domain/services"
)

// BomService orchestrates the full sourcing pipeline: parse the raw CSV,
// optionally enrich descriptions with identified MPNs, search distributors
// per line item, and realize the offers into scored purchasing suggestions.
// Event publishing is handled by the repository layer (outbox pattern).
type BomService struct {
	search     *SearchService
	identifier providers.PartIdentifier // nil disables MPN enrichment
	repo       repositories.ProjectRepository
	log        logger.Logger
}

// NewBomService returns a BomService wired with the given collaborators.
// identifier and repo may each be nil; the pipeline degrades gracefully.
func NewBomService(search *SearchService, identifier providers.PartIdentifier, repo repositories.ProjectRepository, log logger.Logger) *BomService {
	return &BomService{search: search, identifier: identifier, repo: repo, log: log}
}

// Suggest runs the sourcing pipeline over one raw CSV and returns the saved
// project. Parse failures surface as ErrEmptyBom or ErrUnparsableBom; an
// unknown provider name as ErrUnknownProvider. Provider failures and
// enrichment failures never fail the run.
func (s *BomService) Suggest(ctx context.Context, name, csvText string, providerNames []string) (*models.Project, error) {
	items, mapping, err := domainsvcs.ParseBom(csvText)
	if err != nil {
		return nil, fmt.Errorf("parse bom: %w", err)
	}

	items = s.enrich(ctx, items)

	offersByItem := make(map[uuid.UUID][]models.Offer, len(items))
	for _, item := range items {
		offers, err := s.searchItem(ctx, item, providerNames)
		if err != nil {
			return nil, err
		}
		if len(offers) > 0 {
			offersByItem[item.ID] = offers
		}
	}

	realized := domainsvcs.Realize(items, offersByItem)
	result := models.BomSuggestionResult{
		OriginalItems:  items,
		UnmatchedItems: realized.UnmatchedItems,
		Suggestions:    realized.Suggestions,
		ColumnMapping:  mapping,
	}

	project := models.NewProject(name, result)
	bomRealizations.WithLabelValues(project.Status).Inc()

	if s.repo != nil {
		if err := s.repo.Save(ctx, project); err != nil {
			return nil, fmt.Errorf("save project: %w", err)
		}
	}

	s.log.InfoContext(ctx, "bom realized",
		"project_id", project.ID,
		"status", project.Status,
		"items", len(items),
		"unmatched", len(realized.UnmatchedItems),
		"suggestions", len(realized.Suggestions),
	)
	return project, nil
}

// GetProject retrieves a saved project by ID.
func (s *BomService) GetProject(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return project, nil
}

// ListProjects returns a paginated slice of projects plus total count.
func (s *BomService) ListProjects(ctx context.Context, opts repositories.QueryOpts) ([]*models.Project, int, error) {
	projects, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	return projects, total, nil
}

// enrich fills in missing MPNs from free-text descriptions, returning a new
// slice of rebuilt items so the parsed ones stay untouched. Identification
// is best-effort: any failure carries the item over as parsed.
func (s *BomService) enrich(ctx context.Context, items []models.BomItem) []models.BomItem {
	if s.identifier == nil {
		return items
	}
	enriched := make([]models.BomItem, len(items))
	for i, item := range items {
		enriched[i] = item
		if item.MPN != "" || item.Description == "" {
			continue
		}
		mpn, err := s.identifier.IdentifyMPN(ctx, item.Description)
		if err != nil {
			s.log.WarnContext(ctx, "mpn identification failed", "description", item.Description, "error", err)
			continue
		}
		if mpn != "" {
			enriched[i] = item.WithMPN(mpn)
		}
	}
	return enriched
}

// searchItem picks the strongest available query for one line item:
// an MPN search when the item carries one, the general fallback otherwise.
func (s *BomService) searchItem(ctx context.Context, item models.BomItem, providerNames []string) ([]models.Offer, error) {
	if item.MPN != "" {
		result, err := s.search.SearchByMPN(ctx, item.MPN, item.Manufacturer, providerNames)
		if err != nil {
			return nil, err
		}
		return result.Offers, nil
	}

	result, err := s.search.SearchAll(ctx, item.SearchQuery(), providerNames)
	if err != nil {
		return nil, err
	}
	return result.Offers, nil
}
