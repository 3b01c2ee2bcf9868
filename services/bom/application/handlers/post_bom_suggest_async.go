package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.temporal.io/sdk/client"

	"github.com/partsflow/partsflow/pkg/httpx"
	pkgvalidator "github.com/partsflow/partsflow/pkg/validator"
	bomWorkflows "github.com/partsflow/partsflow/services/bom/application/workflows"
)

// WorkflowStarter is the slice of the Temporal client the async handler needs.
// client.Client satisfies it.
type WorkflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// SuggestBomAsyncResponse acknowledges a queued realization. Poll the project
// through GET /bom/projects/{id} once the workflow completes.
type SuggestBomAsyncResponse struct {
	WorkflowID string `json:"workflow_id" example:"bom-realize-123e4567-e89b-12d3-a456-426614174000"`
	RunID      string `json:"run_id"      example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	Status     string `json:"status"      example:"queued"`
} // @name SuggestBomAsyncResponse

// PostBomSuggestAsyncHandler handles POST /bom/suggest/async requests.
type PostBomSuggestAsyncHandler struct {
	temporal WorkflowStarter // nil when Temporal is disabled
}

// NewPostBomSuggestAsyncHandler returns a PostBomSuggestAsyncHandler that
// schedules realizations on the given workflow client.
func NewPostBomSuggestAsyncHandler(temporal WorkflowStarter) *PostBomSuggestAsyncHandler {
	return &PostBomSuggestAsyncHandler{temporal: temporal}
}

// Execute queues a BOM realization on the worker and returns immediately.
//
//	@Summary		Realize a BOM asynchronously
//	@Description	Queues the realization on the worker via Temporal and returns the workflow handle; poll the projects API for the result
//	@Tags			bom
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SuggestBomRequest	true	"BOM realization request"
//	@Success		202		{object}	SuggestBomAsyncResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		503		{object}	ErrorResponse
//	@Router			/bom/suggest/async [post]
func (h *PostBomSuggestAsyncHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SuggestBomRequest](w, r)
	if !ok {
		return
	}

	if h.temporal == nil {
		httpx.JSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "asynchronous realization is disabled; use POST /bom/suggest",
		})
		return
	}

	name := req.Name
	if name == "" {
		name = "Untitled BOM"
	}

	run, err := h.temporal.ExecuteWorkflow(r.Context(), client.StartWorkflowOptions{
		ID:        "bom-realize-" + uuid.New().String(),
		TaskQueue: bomWorkflows.TaskQueue,
	}, bomWorkflows.RealizeBomWorkflow, bomWorkflows.RealizeBomInput{
		Name:      name,
		CSVText:   req.CSVText,
		Providers: req.Providers,
	})
	if err != nil {
		httpx.JSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "could not queue realization workflow",
		})
		return
	}

	httpx.JSON(w, http.StatusAccepted, SuggestBomAsyncResponse{
		WorkflowID: run.GetID(),
		RunID:      run.GetRunID(),
		Status:     "queued",
	})
}
