package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const offerCacheKeyPrefix = "offers"

// CachedOffer is the JSON read model for a distributor offer stored in Redis.
// Prices are kept as strings so the exact decimal representation survives the
// round trip. One cache entry holds the full result list for a
// provider+query pair.
type CachedOffer struct {
	MPN                   string             `json:"mpn"`
	Manufacturer          string             `json:"manufacturer"`
	Description           string             `json:"description"`
	Price                 string             `json:"price"`
	Currency              string             `json:"currency"`
	Stock                 int                `json:"stock"`
	MinOrderQuantity      int                `json:"min_order_quantity"`
	Provider              string             `json:"provider"`
	Distributor           string             `json:"distributor"`
	DistributorPartNumber string             `json:"distributor_part_number"`
	URL                   string             `json:"url"`
	PriceBreaks           []CachedPriceBreak `json:"price_breaks"`
}

// CachedPriceBreak mirrors a single quantity/price tier.
type CachedPriceBreak struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
}

// OfferCache stores provider search results keyed by provider and query so a
// BOM with repeated parts only hits each distributor API once per TTL window.
// Key format: "offers:{provider}:{query}"
type OfferCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewOfferCache creates an OfferCache with the given entry TTL.
func NewOfferCache(r *RedisClient, ttl time.Duration) *OfferCache {
	return &OfferCache{client: r, ttl: ttl}
}

// Get retrieves cached offers for a provider+query pair.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *OfferCache) Get(ctx context.Context, provider, query string) ([]CachedOffer, error) {
	raw, err := c.client.Client().Get(ctx, c.key(provider, query)).Bytes()
	if err != nil {
		return nil, err
	}
	var offers []CachedOffer
	if err := json.Unmarshal(raw, &offers); err != nil {
		return nil, fmt.Errorf("cache decode offers: %w", err)
	}
	return offers, nil
}

// Set writes the full offer list for a provider+query pair.
// An empty list is cached too: a query with no hits should not hammer the
// provider on every BOM line that repeats it.
func (c *OfferCache) Set(ctx context.Context, provider, query string, offers []CachedOffer) error {
	raw, err := json.Marshal(offers)
	if err != nil {
		return fmt.Errorf("cache encode offers: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(provider, query), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// key builds the Redis key: "offers:{provider}:{query}"
func (c *OfferCache) key(provider, query string) string {
	return fmt.Sprintf("%s:%s:%s", offerCacheKeyPrefix, provider, query)
}
