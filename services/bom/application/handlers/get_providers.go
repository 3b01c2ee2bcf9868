package handlers

import (
	"net/http"

	"github.com/partsflow/partsflow/pkg/httpx"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
)

// ProviderStatusResponse describes one registered provider.
type ProviderStatusResponse struct {
	Name       string `json:"name"       example:"mouser"`
	Configured bool   `json:"configured" example:"true"`
} // @name ProviderStatusResponse

// GetProvidersResponse lists all registered providers.
type GetProvidersResponse struct {
	Providers []ProviderStatusResponse `json:"providers"`
} // @name GetProvidersResponse

// GetProvidersHandler handles GET /search/providers requests.
type GetProvidersHandler struct {
	svc *appsvcs.Services
}

// NewGetProvidersHandler returns a GetProvidersHandler backed by the given services.
func NewGetProvidersHandler(svc *appsvcs.Services) *GetProvidersHandler {
	return &GetProvidersHandler{svc: svc}
}

// Execute lists registered providers and whether each can serve searches.
//
//	@Summary		List providers
//	@Description	Returns every registered distributor provider and its configuration state
//	@Tags			search
//	@Produce		json
//	@Success		200	{object}	GetProvidersResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/search/providers [get]
func (h *GetProvidersHandler) Execute(w http.ResponseWriter, r *http.Request) {
	statuses := h.svc.Search.Providers()
	out := make([]ProviderStatusResponse, len(statuses))
	for i, st := range statuses {
		out[i] = ProviderStatusResponse{Name: st.Name, Configured: st.Configured}
	}
	httpx.JSON(w, http.StatusOK, GetProvidersResponse{Providers: out})
}
