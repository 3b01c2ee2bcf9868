// Package workflows runs BOM realization asynchronously on Temporal. Large
// BOMs mean many distributor API calls; the workflow gives them durable
// retries without holding an HTTP request open.
package workflows

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
)

// TaskQueue is the Temporal task queue for BOM realization.
const TaskQueue = "bom-realization"

// RealizeBomInput carries one realization request into the workflow.
type RealizeBomInput struct {
	Name      string   `json:"name"`
	CSVText   string   `json:"csv_text"`
	Providers []string `json:"providers"`
}

// RealizeBomResult is the workflow outcome; the full result document is
// persisted by the activity and fetched through the projects API.
type RealizeBomResult struct {
	ProjectID       uuid.UUID `json:"project_id"`
	Status          string    `json:"status"`
	SuggestionCount int       `json:"suggestion_count"`
}

// Activities holds the application services the worker exposes to workflows.
type Activities struct {
	Bom *appsvcs.BomService
}

// RealizeBom runs the full sourcing pipeline as a Temporal activity.
func (a *Activities) RealizeBom(ctx context.Context, input RealizeBomInput) (RealizeBomResult, error) {
	project, err := a.Bom.Suggest(ctx, input.Name, input.CSVText, input.Providers)
	if err != nil {
		return RealizeBomResult{}, err
	}
	return RealizeBomResult{
		ProjectID:       project.ID,
		Status:          project.Status,
		SuggestionCount: len(project.Result.Suggestions),
	}, nil
}

// RealizeBomWorkflow realizes one BOM with durable retries.
func RealizeBomWorkflow(ctx workflow.Context, input RealizeBomInput) (RealizeBomResult, error) {
	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	})

	var a *Activities
	var result RealizeBomResult
	if err := workflow.ExecuteActivity(ctx, a.RealizeBom, input).Get(ctx, &result); err != nil {
		return RealizeBomResult{}, err
	}
	return result, nil
}
