package services

import (
	"net/http"

	"github.com/partsflow/partsflow/pkg/app"
	"github.com/partsflow/partsflow/pkg/cache"
	domainproviders "github.com/partsflow/partsflow/services/bom/domain/providers"
	"github.com/partsflow/partsflow/services/bom/infrastructure/enrich"
	"github.com/partsflow/partsflow/services/bom/infrastructure/persistence/postgres"
	infraproviders "github.com/partsflow/partsflow/services/bom/infrastructure/providers"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Search *SearchService
	Bom    *BomService
}

// New wires all bom application services with infrastructure from the
// Application container. All distributor adapters share one HTTP client and
// one OAuth token cache.
func New(a *app.Application) *Services {
	client := &http.Client{Timeout: a.Cfg.ProviderTimeout}
	tokens := infraproviders.NewTokenCache()

	adapters := []domainproviders.PartProvider{
		infraproviders.NewMouserProvider(a.Cfg.MouserConfig(), client, a.Logger),
		infraproviders.NewDigiKeyProvider(a.Cfg.DigiKeyConfig(), client, tokens, a.Logger),
		infraproviders.NewOctopartProvider(a.Cfg.OctopartConfig(), client, tokens, a.Logger),
	}

	var offerCache *cache.OfferCache
	if a.Redis != nil {
		offerCache = cache.NewOfferCache(a.Redis, a.Cfg.OfferCacheTTL)
	}
	search := NewSearchService(adapters, offerCache, a.Cfg.ProviderTimeout, a.Logger)

	var identifier domainproviders.PartIdentifier
	if a.Cfg.LLMBaseURL != "" {
		identifier = enrich.NewLLMIdentifier(a.Cfg.LLMBaseURL, a.Cfg.LLMAPIKey, a.Cfg.LLMModel, client, a.Logger)
	}

	repo := postgres.NewProjectRepository(a.Db, a.EventBus)
	return &Services{
		Search: search,
		Bom:    NewBomService(search, identifier, repo, a.Logger),
	}
}
