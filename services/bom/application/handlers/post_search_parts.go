package handlers

import (
	"net/http"

	"github.com/partsflow/partsflow/pkg/errhttp"
	"github.com/partsflow/partsflow/pkg/httpx"
	pkgvalidator "github.com/partsflow/partsflow/pkg/validator"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// SearchPartsRequest is the request body for POST /search/parts.
type SearchPartsRequest struct {
	Query     string   `json:"query" validate:"required,min=2,max=255" example:"STM32F103C8T6"`
	Providers []string `json:"providers" validate:"dive,oneof=mouser digikey octopart" example:"octopart"`
} // @name SearchPartsRequest

// SearchPartsResponse is the merged multi-provider search result.
type SearchPartsResponse struct {
	Query             string         `json:"query"              example:"STM32F103C8T6"`
	Results           []models.Offer `json:"results"`
	ProvidersSearched []string       `json:"providers_searched" example:"mouser,digikey"`
	ResultsByProvider map[string]int `json:"results_by_provider"`
} // @name SearchPartsResponse

// PostSearchPartsHandler handles POST /search/parts requests.
type PostSearchPartsHandler struct {
	svc *appsvcs.Services
}

// NewPostSearchPartsHandler returns a PostSearchPartsHandler backed by the given services.
func NewPostSearchPartsHandler(svc *appsvcs.Services) *PostSearchPartsHandler {
	return &PostSearchPartsHandler{svc: svc}
}

// Execute searches all requested providers for offers matching a query.
//
//	@Summary		Search distributor offers
//	@Description	Fans the query out to the requested providers and returns merged offers sorted by price
//	@Tags			search
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SearchPartsRequest	true	"Part search request"
//	@Success		200		{object}	SearchPartsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/search/parts [post]
func (h *PostSearchPartsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SearchPartsRequest](w, r)
	if !ok {
		return
	}

	result, err := h.svc.Search.SearchAll(r.Context(), req.Query, req.Providers)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	offers := result.Offers
	if offers == nil {
		offers = []models.Offer{}
	}
	httpx.JSON(w, http.StatusOK, SearchPartsResponse{
		Query:             req.Query,
		Results:           offers,
		ProvidersSearched: result.ProvidersSearched,
		ResultsByProvider: result.CountByProvider,
	})
}
