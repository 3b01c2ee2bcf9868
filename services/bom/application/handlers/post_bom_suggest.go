// Package handlers contains the HTTP handlers for the bom bounded context.
// One handler struct per route, wired by the api package.
package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/partsflow/partsflow/pkg/errhttp"
	"github.com/partsflow/partsflow/pkg/httpx"
	pkgvalidator "github.com/partsflow/partsflow/pkg/validator"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// SuggestBomRequest is the request body for POST /bom/suggest.
type SuggestBomRequest struct {
	Name      string   `json:"name" validate:"max=255" example:"Rev B prototype"`
	CSVText   string   `json:"csv_text" validate:"required" example:"Part Number,Qty\nRC0603FR-0710KL,10"`
	Providers []string `json:"providers" validate:"dive,oneof=mouser digikey octopart" example:"mouser,digikey"`
} // @name SuggestBomRequest

// SuggestBomResponse is returned on a completed realization run.
type SuggestBomResponse struct {
	ProjectID uuid.UUID                  `json:"project_id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string                     `json:"name"       example:"Rev B prototype"`
	Status    string                     `json:"status"     example:"complete"`
	Result    models.BomSuggestionResult `json:"result"`
	CreatedAt time.Time                  `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name SuggestBomResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"bom contains no line items"`
} // @name ErrorResponse

// PostBomSuggestHandler handles POST /bom/suggest requests.
type PostBomSuggestHandler struct {
	svc *appsvcs.Services
}

// NewPostBomSuggestHandler returns a PostBomSuggestHandler backed by the given services.
func NewPostBomSuggestHandler(svc *appsvcs.Services) *PostBomSuggestHandler {
	return &PostBomSuggestHandler{svc: svc}
}

// Execute parses a raw BOM and realizes it into scored purchasing suggestions.
//
//	@Summary		Realize a BOM
//	@Description	Parses CSV text, searches distributor offers per line item, and returns scored purchasing configurations
//	@Tags			bom
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SuggestBomRequest	true	"BOM realization request"
//	@Success		200		{object}	SuggestBomResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/bom/suggest [post]
func (h *PostBomSuggestHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SuggestBomRequest](w, r)
	if !ok {
		return
	}

	name := req.Name
	if name == "" {
		name = "Untitled BOM"
	}

	project, err := h.svc.Bom.Suggest(r.Context(), name, req.CSVText, req.Providers)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, SuggestBomResponse{
		ProjectID: project.ID,
		Name:      project.Name,
		Status:    project.Status,
		Result:    project.Result,
		CreatedAt: project.CreatedAt,
	})
}
