package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsflow/partsflow/pkg/config"
	"github.com/partsflow/partsflow/pkg/logger"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

const (
	defaultOctopartGraphQLURL = "https://api.nexar.com/graphql"
	defaultOctopartTokenURL   = "https://identity.nexar.com/connect/token"
)

// octopartSearchQuery asks the Nexar supply API for parts with per-seller
// offers; each offer carries its own price tiers, stock, and MOQ.
const octopartSearchQuery = `
query PartSearch($q: String!, $limit: Int!) {
  supSearch(q: $q, limit: $limit) {
    results {
      part {
        mpn
        manufacturer { name }
        shortDescription
        sellers {
          company { name }
          offers {
            sku
            inventoryLevel
            moq
            clickUrl
            prices { quantity price currency }
          }
        }
      }
    }
  }
}`

// OctopartProvider searches the Octopart catalog through the Nexar GraphQL
// API. Unlike Mouser and DigiKey it can return offers from many distributors
// in a single response.
type OctopartProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
	tokens *TokenCache
	log    logger.Logger

	// GraphQLURL and TokenURL override the live endpoints in tests.
	GraphQLURL string
	TokenURL   string
}

func NewOctopartProvider(cfg config.ProviderConfig, client *http.Client, tokens *TokenCache, log logger.Logger) *OctopartProvider {
	return &OctopartProvider{
		cfg:        cfg,
		client:     client,
		tokens:     tokens,
		log:        log,
		GraphQLURL: defaultOctopartGraphQLURL,
		TokenURL:   defaultOctopartTokenURL,
	}
}

func (p *OctopartProvider) Name() string { return ProviderOctopart }

func (p *OctopartProvider) Configured() bool {
	return (p.cfg.ClientID != "" && p.cfg.ClientSecret != "") || p.cfg.MockOnMissingCredentials
}

func (p *OctopartProvider) Search(ctx context.Context, query string) ([]models.Offer, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		if p.cfg.MockOnMissingCredentials {
			p.log.DebugContext(ctx, "octopart credentials missing, serving mock offers", "query", query)
			return mockOffers(ProviderOctopart, query), nil
		}
		return nil, fmt.Errorf("%w: octopart credentials not configured", bomdomain.ErrProviderUnavailable)
	}

	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: octopart auth: %w", bomdomain.ErrProviderUnavailable, err)
	}

	reqBody := map[string]any{
		"query": octopartSearchQuery,
		"variables": map[string]any{
			"q":     query,
			"limit": 5,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode octopart request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build octopart request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: octopart: %w", bomdomain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: octopart returned status %d", bomdomain.ErrProviderUnavailable, resp.StatusCode)
	}

	var gr octopartGraphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, fmt.Errorf("decode octopart response: %w", err)
	}
	if len(gr.Errors) > 0 {
		return nil, fmt.Errorf("%w: octopart: %s", bomdomain.ErrProviderUnavailable, gr.Errors[0].Message)
	}

	return transformOctopartResults(gr.Data.SupSearch.Results), nil
}

func (p *OctopartProvider) SearchByMPN(ctx context.Context, mpn, manufacturer string) ([]models.Offer, error) {
	q := mpn
	if manufacturer != "" {
		q = strings.TrimSpace(manufacturer + " " + mpn)
	}
	return p.Search(ctx, q)
}

func (p *OctopartProvider) token(ctx context.Context) (string, error) {
	if tok, ok := p.tokens.Get(ProviderOctopart); ok {
		return tok, nil
	}
	tok, ttl, err := fetchClientCredentialsToken(ctx, p.client, p.TokenURL, p.cfg.ClientID, p.cfg.ClientSecret)
	if err != nil {
		return "", err
	}
	p.tokens.Put(ProviderOctopart, tok, ttl)
	return tok, nil
}

type octopartGraphQLResponse struct {
	Data struct {
		SupSearch struct {
			Results []octopartResult `json:"results"`
		} `json:"supSearch"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type octopartResult struct {
	Part struct {
		Mpn          string `json:"mpn"`
		Manufacturer struct {
			Name string `json:"name"`
		} `json:"manufacturer"`
		ShortDescription string `json:"shortDescription"`
		Sellers          []struct {
			Company struct {
				Name string `json:"name"`
			} `json:"company"`
			Offers []struct {
				Sku            string `json:"sku"`
				InventoryLevel int    `json:"inventoryLevel"`
				Moq            int    `json:"moq"`
				ClickUrl       string `json:"clickUrl"`
				Prices         []struct {
					Quantity int     `json:"quantity"`
					Price    float64 `json:"price"`
					Currency string  `json:"currency"`
				} `json:"prices"`
			} `json:"offers"`
		} `json:"sellers"`
	} `json:"part"`
}

func transformOctopartResults(results []octopartResult) []models.Offer {
	var offers []models.Offer
	for _, res := range results {
		part := res.Part
		for _, seller := range part.Sellers {
			for _, offer := range seller.Offers {
				breaks := make([]models.PriceBreak, 0, len(offer.Prices))
				currency := "USD"
				for _, tier := range offer.Prices {
					price := decimal.NewFromFloat(tier.Price)
					if !price.IsPositive() {
						continue
					}
					if tier.Currency != "" {
						currency = tier.Currency
					}
					breaks = append(breaks, models.PriceBreak{Quantity: tier.Quantity, Price: price})
				}
				if len(breaks) == 0 {
					continue
				}

				lowest := breaks[0].Price
				for _, pb := range breaks[1:] {
					if pb.Price.LessThan(lowest) {
						lowest = pb.Price
					}
				}

				moq := offer.Moq
				if moq <= 0 {
					moq = 1
				}

				stock := offer.InventoryLevel
				if stock < 0 {
					stock = 0
				}

				offers = append(offers, models.Offer{
					MPN:                   part.Mpn,
					Manufacturer:          part.Manufacturer.Name,
					Description:           part.ShortDescription,
					Price:                 lowest,
					Currency:              currency,
					Stock:                 stock,
					MinOrderQuantity:      moq,
					Provider:              ProviderOctopart,
					Distributor:           seller.Company.Name,
					DistributorPartNumber: offer.Sku,
					URL:                   offer.ClickUrl,
					PriceBreaks:           breaks,
				})
			}
		}
	}
	models.SortOffers(offers)
	return offers
}
