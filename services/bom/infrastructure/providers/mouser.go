package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/partsflow/partsflow/pkg/config"
	"github.com/partsflow/partsflow/pkg/logger"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

const (
	ProviderMouser   = "mouser"
	ProviderDigiKey  = "digikey"
	ProviderOctopart = "octopart"
)

const defaultMouserBaseURL = "https://api.mouser.com/api/v1"

// availabilityPattern pulls the leading count out of Mouser availability
// strings such as "2500 In Stock" or "None".
var availabilityPattern = regexp.MustCompile(`(\d+)`)

// MouserProvider searches the Mouser keyword API. Authentication is a plain
// API key passed as a query parameter.
type MouserProvider struct {
	cfg    config.ProviderConfig
	client *http.Client
	log    logger.Logger

	// BaseURL overrides the live endpoint in tests.
	BaseURL string
}

func NewMouserProvider(cfg config.ProviderConfig, client *http.Client, log logger.Logger) *MouserProvider {
	return &MouserProvider{cfg: cfg, client: client, log: log, BaseURL: defaultMouserBaseURL}
}

func (p *MouserProvider) Name() string { return ProviderMouser }

func (p *MouserProvider) Configured() bool {
	return p.cfg.APIKey != "" || p.cfg.MockOnMissingCredentials
}

func (p *MouserProvider) Search(ctx context.Context, query string) ([]models.Offer, error) {
	if p.cfg.APIKey == "" {
		if p.cfg.MockOnMissingCredentials {
			p.log.DebugContext(ctx, "mouser credentials missing, serving mock offers", "query", query)
			return mockOffers(ProviderMouser, query), nil
		}
		return nil, fmt.Errorf("%w: mouser API key not configured", bomdomain.ErrProviderUnavailable)
	}

	body := mouserSearchRequest{}
	body.SearchByKeywordRequest.Keyword = query
	body.SearchByKeywordRequest.Records = 10
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode mouser request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/search/keyword?apiKey=%s", p.BaseURL, p.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build mouser request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: mouser: %w", bomdomain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: mouser returned status %d", bomdomain.ErrProviderUnavailable, resp.StatusCode)
	}

	var sr mouserSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode mouser response: %w", err)
	}

	return transformMouserParts(sr.SearchResults.Parts), nil
}

func (p *MouserProvider) SearchByMPN(ctx context.Context, mpn, manufacturer string) ([]models.Offer, error) {
	return p.Search(ctx, mpn)
}

type mouserSearchRequest struct {
	SearchByKeywordRequest struct {
		Keyword string `json:"keyword"`
		Records int    `json:"records"`
	} `json:"SearchByKeywordRequest"`
}

type mouserSearchResponse struct {
	SearchResults struct {
		Parts []mouserPart `json:"Parts"`
	} `json:"SearchResults"`
}

type mouserPart struct {
	ManufacturerPartNumber string `json:"ManufacturerPartNumber"`
	Manufacturer           string `json:"Manufacturer"`
	Description            string `json:"Description"`
	MouserPartNumber       string `json:"MouserPartNumber"`
	Availability           string `json:"Availability"`
	Min                    string `json:"Min"`
	ProductDetailUrl       string `json:"ProductDetailUrl"`
	PriceBreaks            []struct {
		Quantity int    `json:"Quantity"`
		Price    string `json:"Price"`
		Currency string `json:"Currency"`
	} `json:"PriceBreaks"`
}

func transformMouserParts(parts []mouserPart) []models.Offer {
	offers := make([]models.Offer, 0, len(parts))
	for _, part := range parts {
		breaks := make([]models.PriceBreak, 0, len(part.PriceBreaks))
		currency := "USD"
		for _, pb := range part.PriceBreaks {
			price, err := parseMouserPrice(pb.Price)
			if err != nil || !price.IsPositive() {
				continue
			}
			if pb.Currency != "" {
				currency = pb.Currency
			}
			breaks = append(breaks, models.PriceBreak{Quantity: pb.Quantity, Price: price})
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

		moq := 1
		if n, err := strconv.Atoi(strings.TrimSpace(part.Min)); err == nil && n > 0 {
			moq = n
		}

		offers = append(offers, models.Offer{
			MPN:                   part.ManufacturerPartNumber,
			Manufacturer:          part.Manufacturer,
			Description:           part.Description,
			Price:                 lowest,
			Currency:              currency,
			Stock:                 parseAvailability(part.Availability),
			MinOrderQuantity:      moq,
			Provider:              ProviderMouser,
			Distributor:           "Mouser",
			DistributorPartNumber: part.MouserPartNumber,
			URL:                   part.ProductDetailUrl,
			PriceBreaks:           breaks,
		})
	}
	models.SortOffers(offers)
	return offers
}

// parseMouserPrice handles values like "$1.50" or "0.80" with optional
// thousands separators.
func parseMouserPrice(s string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty price")
	}
	return decimal.NewFromString(cleaned)
}

// parseAvailability extracts the stock count from strings such as
// "2500 In Stock". Anything without a number counts as zero stock.
func parseAvailability(s string) int {
	m := availabilityPattern.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return n
}
