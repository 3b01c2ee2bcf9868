package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/partsflow/partsflow/pkg/errhttp"
	"github.com/partsflow/partsflow/pkg/httpx"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
	"github.com/partsflow/partsflow/services/bom/domain/models"
	"github.com/partsflow/partsflow/services/bom/domain/repositories"
)

// ProjectResponse is the full detail view of one saved project.
type ProjectResponse struct {
	ID        uuid.UUID                  `json:"id"         example:"123e4567-e89b-12d3-a456-426614174000"`
	Name      string                     `json:"name"       example:"Rev B prototype"`
	Status    string                     `json:"status"     example:"complete"`
	Result    models.BomSuggestionResult `json:"result"`
	CreatedAt time.Time                  `json:"created_at" example:"2024-01-15T10:30:00Z"`
} // @name ProjectResponse

// ProjectSummaryResponse is the list view of one saved project.
type ProjectSummaryResponse struct {
	ID              uuid.UUID `json:"id"               example:"123e4567-e89b-12d3-a456-426614174000"`
	Name            string    `json:"name"             example:"Rev B prototype"`
	Status          string    `json:"status"           example:"complete"`
	ItemCount       int       `json:"item_count"       example:"12"`
	SuggestionCount int       `json:"suggestion_count" example:"3"`
	BestScore       float64   `json:"best_score"       example:"87.5"`
	CreatedAt       time.Time `json:"created_at"       example:"2024-01-15T10:30:00Z"`
} // @name ProjectSummaryResponse

// ListProjectsResponse is a page of project summaries.
type ListProjectsResponse struct {
	Projects []ProjectSummaryResponse `json:"projects"`
	Total    int                      `json:"total" example:"42"`
} // @name ListProjectsResponse

// GetProjectHandler handles GET /bom/projects/{id} requests.
type GetProjectHandler struct {
	svc *appsvcs.Services
}

// NewGetProjectHandler returns a GetProjectHandler backed by the given services.
func NewGetProjectHandler(svc *appsvcs.Services) *GetProjectHandler {
	return &GetProjectHandler{svc: svc}
}

// Execute retrieves one saved project with its full realization result.
//
//	@Summary		Get project
//	@Description	Returns one saved BOM realization run by ID
//	@Tags			bom
//	@Produce		json
//	@Param			id	path		string	true	"Project ID"
//	@Success		200	{object}	ProjectResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/bom/projects/{id} [get]
func (h *GetProjectHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid project id")
		return
	}

	project, err := h.svc.Bom.GetProject(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ProjectResponse{
		ID:        project.ID,
		Name:      project.Name,
		Status:    project.Status,
		Result:    project.Result,
		CreatedAt: project.CreatedAt,
	})
}

// ListProjectsHandler handles GET /bom/projects requests.
type ListProjectsHandler struct {
	svc *appsvcs.Services
}

// NewListProjectsHandler returns a ListProjectsHandler backed by the given services.
func NewListProjectsHandler(svc *appsvcs.Services) *ListProjectsHandler {
	return &ListProjectsHandler{svc: svc}
}

// Execute lists saved projects, newest first.
//
//	@Summary		List projects
//	@Description	Returns a page of saved BOM realization runs
//	@Tags			bom
//	@Produce		json
//	@Param			limit	query		int	false	"Page size (default 20, max 100)"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	ListProjectsResponse
//	@Failure		401		{object}	ErrorResponse
//	@Router			/bom/projects [get]
func (h *ListProjectsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	opts := parseQueryOpts(r)

	projects, total, err := h.svc.Bom.ListProjects(r.Context(), opts)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]ProjectSummaryResponse, len(projects))
	for i, p := range projects {
		out[i] = ProjectSummaryResponse{
			ID:              p.ID,
			Name:            p.Name,
			Status:          p.Status,
			ItemCount:       len(p.Result.OriginalItems),
			SuggestionCount: len(p.Result.Suggestions),
			BestScore:       p.BestScore(),
			CreatedAt:       p.CreatedAt,
		}
	}
	httpx.JSON(w, http.StatusOK, ListProjectsResponse{Projects: out, Total: total})
}

func parseQueryOpts(r *http.Request) repositories.QueryOpts {
	opts := repositories.QueryOpts{Limit: 20, Offset: 0}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		opts.Offset = v
	}
	return opts
}
