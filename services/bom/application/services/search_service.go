package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	pkgcache "github.com/partsflow/partsflow/pkg/cache"
	"github.com/partsflow/partsflow/pkg/logger"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
	"github.com/partsflow/partsflow/services/bom/domain/providers"
)

// SearchResult is the merged outcome of one multi-provider search.
type SearchResult struct {
	// Offers from every provider that answered, sorted ascending by price.
	Offers []models.Offer
	// ProvidersSearched lists the providers that were queried, including
	// ones that failed or returned nothing.
	ProvidersSearched []string
	// CountByProvider maps provider name to the number of offers it
	// contributed. A failed provider contributes zero, never an error.
	CountByProvider map[string]int
}

// SearchService fans one query out to all configured providers concurrently
// and merges their answers. One slow or broken distributor degrades the
// result, it never fails the search. Normalized offers are cached in Redis
// per provider+query so repeated BOM lines skip the distributor APIs.
type SearchService struct {
	providers []providers.PartProvider
	cache     *pkgcache.OfferCache
	timeout   time.Duration
	log       logger.Logger
}

// NewSearchService returns a SearchService over the given adapters.
// cache may be nil to disable offer caching.
func NewSearchService(adapters []providers.PartProvider, cache *pkgcache.OfferCache, timeout time.Duration, log logger.Logger) *SearchService {
	return &SearchService{providers: adapters, cache: cache, timeout: timeout, log: log}
}

// ProviderStatus describes one registered adapter for the providers endpoint.
type ProviderStatus struct {
	Name       string
	Configured bool
}

// Providers returns the status of every registered adapter, in registration order.
func (s *SearchService) Providers() []ProviderStatus {
	statuses := make([]ProviderStatus, len(s.providers))
	for i, p := range s.providers {
		statuses[i] = ProviderStatus{Name: p.Name(), Configured: p.Configured()}
	}
	return statuses
}

// SearchAll queries the named providers concurrently and merges the results.
// An empty names slice means every configured provider. An unknown name
// returns ErrUnknownProvider before any network call is made.
func (s *SearchService) SearchAll(ctx context.Context, query string, names []string) (SearchResult, error) {
	return s.fanOut(ctx, names, func(ctx context.Context, p providers.PartProvider) ([]models.Offer, error) {
		return s.cached(ctx, p, query, func(ctx context.Context) ([]models.Offer, error) {
			return p.Search(ctx, query)
		})
	})
}

// SearchByMPN queries the named providers by manufacturer part number.
// Same provider-resolution and failure semantics as SearchAll.
func (s *SearchService) SearchByMPN(ctx context.Context, mpn, manufacturer string, names []string) (SearchResult, error) {
	cacheKey := mpn
	if manufacturer != "" {
		cacheKey = manufacturer + " " + mpn
	}
	return s.fanOut(ctx, names, func(ctx context.Context, p providers.PartProvider) ([]models.Offer, error) {
		return s.cached(ctx, p, cacheKey, func(ctx context.Context) ([]models.Offer, error) {
			return p.SearchByMPN(ctx, mpn, manufacturer)
		})
	})
}

func (s *SearchService) fanOut(ctx context.Context, names []string, search func(context.Context, providers.PartProvider) ([]models.Offer, error)) (SearchResult, error) {
	selected, err := s.resolve(names)
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		ProvidersSearched: make([]string, 0, len(selected)),
		CountByProvider:   make(map[string]int, len(selected)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, p := range selected {
		result.ProvidersSearched = append(result.ProvidersSearched, p.Name())
		result.CountByProvider[p.Name()] = 0

		wg.Add(1)
		go func(p providers.PartProvider) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			start := time.Now()
			offers, err := search(callCtx, p)
			observeProviderSearch(p.Name(), err, time.Since(start))
			if err != nil {
				s.log.WarnContext(ctx, "provider search failed", "provider", p.Name(), "error", err)
				return
			}

			mu.Lock()
			result.Offers = append(result.Offers, offers...)
			result.CountByProvider[p.Name()] = len(offers)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	models.SortOffers(result.Offers)
	return result, nil
}

// resolve maps requested provider names to adapters. Empty input selects
// every configured adapter.
func (s *SearchService) resolve(names []string) ([]providers.PartProvider, error) {
	if len(names) == 0 {
		var configured []providers.PartProvider
		for _, p := range s.providers {
			if p.Configured() {
				configured = append(configured, p)
			}
		}
		return configured, nil
	}

	byName := make(map[string]providers.PartProvider, len(s.providers))
	for _, p := range s.providers {
		byName[p.Name()] = p
	}

	selected := make([]providers.PartProvider, 0, len(names))
	for _, name := range names {
		p, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", bomdomain.ErrUnknownProvider, name)
		}
		selected = append(selected, p)
	}
	return selected, nil
}

// cached wraps one provider call in a read-through offer cache. Cache
// failures (beyond a plain miss) fall through to the live search.
func (s *SearchService) cached(ctx context.Context, p providers.PartProvider, key string, search func(context.Context) ([]models.Offer, error)) ([]models.Offer, error) {
	if s.cache == nil {
		return search(ctx)
	}

	if entries, err := s.cache.Get(ctx, p.Name(), key); err == nil {
		return offersFromCache(entries), nil
	} else if !errors.Is(err, redis.Nil) {
		s.log.WarnContext(ctx, "offer cache read failed", "provider", p.Name(), "error", err)
	}

	offers, err := search(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, p.Name(), key, offersToCache(offers)); err != nil {
		s.log.WarnContext(ctx, "offer cache write failed", "provider", p.Name(), "error", err)
	}
	return offers, nil
}

func offersToCache(offers []models.Offer) []pkgcache.CachedOffer {
	entries := make([]pkgcache.CachedOffer, len(offers))
	for i, o := range offers {
		breaks := make([]pkgcache.CachedPriceBreak, len(o.PriceBreaks))
		for j, pb := range o.PriceBreaks {
			breaks[j] = pkgcache.CachedPriceBreak{Quantity: pb.Quantity, Price: pb.Price.String()}
		}
		entries[i] = pkgcache.CachedOffer{
			MPN:                   o.MPN,
			Manufacturer:          o.Manufacturer,
			Description:           o.Description,
			Price:                 o.Price.String(),
			Currency:              o.Currency,
			Stock:                 o.Stock,
			MinOrderQuantity:      o.MinOrderQuantity,
			Provider:              o.Provider,
			Distributor:           o.Distributor,
			DistributorPartNumber: o.DistributorPartNumber,
			URL:                   o.URL,
			PriceBreaks:           breaks,
		}
	}
	return entries
}

func offersFromCache(entries []pkgcache.CachedOffer) []models.Offer {
	offers := make([]models.Offer, 0, len(entries))
	for _, e := range entries {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			continue
		}
		breaks := make([]models.PriceBreak, 0, len(e.PriceBreaks))
		for _, pb := range e.PriceBreaks {
			p, err := decimal.NewFromString(pb.Price)
			if err != nil {
				continue
			}
			breaks = append(breaks, models.PriceBreak{Quantity: pb.Quantity, Price: p})
		}
		offers = append(offers, models.Offer{
			MPN:                   e.MPN,
			Manufacturer:          e.Manufacturer,
			Description:           e.Description,
			Price:                 price,
			Currency:              e.Currency,
			Stock:                 e.Stock,
			MinOrderQuantity:      e.MinOrderQuantity,
			Provider:              e.Provider,
			Distributor:           e.Distributor,
			DistributorPartNumber: e.DistributorPartNumber,
			URL:                   e.URL,
			PriceBreaks:           breaks,
		})
	}
	return offers
}
