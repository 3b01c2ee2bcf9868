package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/partsflow/partsflow/pkg/config"
	"github.com/partsflow/partsflow/pkg/logger"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

const (
	defaultDigiKeyBaseURL  = "https://api.digikey.com"
	defaultDigiKeyTokenURL = "https://api.digikey.com/v1/oauth2/token"
)

// DigiKeyProvider searches the DigiKey product search API using an OAuth2
// client-credentials token. Tokens are shared through the TokenCache so a
// burst of BOM line lookups reuses a single grant.
type DigiKeyProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
	tokens *TokenCache
	log    logger.Logger

	// BaseURL and TokenURL override the live endpoints in tests.
	BaseURL  string
	TokenURL string
}

func NewDigiKeyProvider(cfg config.ProviderConfig, client *http.Client, tokens *TokenCache, log logger.Logger) *DigiKeyProvider {
	return &DigiKeyProvider{
		cfg:      cfg,
		client:   client,
		tokens:   tokens,
		log:      log,
		BaseURL:  defaultDigiKeyBaseURL,
		TokenURL: defaultDigiKeyTokenURL,
	}
}

func (p *DigiKeyProvider) Name() string { return ProviderDigiKey }

func (p *DigiKeyProvider) Configured() bool {
	return (p.cfg.ClientID != "" && p.cfg.ClientSecret != "") || p.cfg.MockOnMissingCredentials
}

func (p *DigiKeyProvider) Search(ctx context.Context, query string) ([]models.Offer, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		if p.cfg.MockOnMissingCredentials {
			p.log.DebugContext(ctx, "digikey credentials missing, serving mock offers", "query", query)
			return mockOffers(ProviderDigiKey, query), nil
		}
		return nil, fmt.Errorf("%w: digikey credentials not configured", bomdomain.ErrProviderUnavailable)
	}

	token, err := p.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: digikey auth: %w", bomdomain.ErrProviderUnavailable, err)
	}

	body := digikeySearchRequest{Keywords: query, RecordCount: 10}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode digikey request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/products/v4/search/keyword", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build digikey request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-DIGIKEY-Client-Id", p.cfg.ClientID)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: digikey: %w", bomdomain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: digikey returned status %d", bomdomain.ErrProviderUnavailable, resp.StatusCode)
	}

	var sr digikeySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode digikey response: %w", err)
	}

	return transformDigiKeyProducts(sr.Products), nil
}

func (p *DigiKeyProvider) SearchByMPN(ctx context.Context, mpn, manufacturer string) ([]models.Offer, error) {
	return p.Search(ctx, mpn)
}

func (p *DigiKeyProvider) token(ctx context.Context) (string, error) {
	if tok, ok := p.tokens.Get(ProviderDigiKey); ok {
		return tok, nil
	}
	tok, ttl, err := fetchClientCredentialsToken(ctx, p.client, p.TokenURL, p.cfg.ClientID, p.cfg.ClientSecret)
	if err != nil {
		return "", err
	}
	p.tokens.Put(ProviderDigiKey, tok, ttl)
	return tok, nil
}

type digikeySearchRequest struct {
	Keywords    string `json:"Keywords"`
	RecordCount int    `json:"RecordCount"`
}

type digikeySearchResponse struct {
	Products []digikeyProduct `json:"Products"`
}

type digikeyProduct struct {
	ManufacturerProductNumber string `json:"ManufacturerProductNumber"`
	Manufacturer              struct {
		Name string `json:"Name"`
	} `json:"Manufacturer"`
	Description struct {
		ProductDescription string `json:"ProductDescription"`
	} `json:"Description"`
	QuantityAvailable int    `json:"QuantityAvailable"`
	ProductUrl        string `json:"ProductUrl"`
	ProductVariations []struct {
		DigiKeyProductNumber  string `json:"DigiKeyProductNumber"`
		MinimumOrderQuantity  int    `json:"MinimumOrderQuantity"`
		QuantityAvailableforP int    `json:"QuantityAvailableforPackageType"`
		StandardPricing       []struct {
			BreakQuantity int     `json:"BreakQuantity"`
			UnitPrice     float64 `json:"UnitPrice"`
		} `json:"StandardPricing"`
	} `json:"ProductVariations"`
}

func transformDigiKeyProducts(products []digikeyProduct) []models.Offer {
	offers := make([]models.Offer, 0, len(products))
	for _, prod := range products {
		if len(prod.ProductVariations) == 0 {
			continue
		}
		// First variation carries the standard packaging tier.
		v := prod.ProductVariations[0]

		breaks := make([]models.PriceBreak, 0, len(v.StandardPricing))
		for _, tier := range v.StandardPricing {
			price := decimal.NewFromFloat(tier.UnitPrice)
			if !price.IsPositive() {
				continue
			}
			breaks = append(breaks, models.PriceBreak{Quantity: tier.BreakQuantity, Price: price})
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

		moq := v.MinimumOrderQuantity
		if moq <= 0 {
			moq = 1
		}

		// Digi-Key reports negative availability for back-ordered parts.
		stock := prod.QuantityAvailable
		if stock < 0 {
			stock = 0
		}

		offers = append(offers, models.Offer{
			MPN:                   prod.ManufacturerProductNumber,
			Manufacturer:          prod.Manufacturer.Name,
			Description:           prod.Description.ProductDescription,
			Price:                 lowest,
			Currency:              "USD",
			Stock:                 stock,
			MinOrderQuantity:      moq,
			Provider:              ProviderDigiKey,
			Distributor:           "Digi-Key",
			DistributorPartNumber: v.DigiKeyProductNumber,
			URL:                   prod.ProductUrl,
			PriceBreaks:           breaks,
		})
	}
	models.SortOffers(offers)
	return offers
}
