package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/partsflow/partsflow/services/bom/domain/models"
)

// QueryOpts contains pagination parameters for list queries.
type QueryOpts struct {
	Limit  int // Maximum number of records to return
	Offset int // Number of records to skip
}

// ProjectRepository is the persistence interface for realization projects.
// The domain layer owns this interface; infrastructure implements it.
type ProjectRepository interface {
	// Save persists a completed realization run and publishes its
	// BomRealizedEvent atomically.
	Save(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project. Returns ErrProjectNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// List retrieves a page of projects newest-first plus the total count
	// (ignoring pagination).
	List(ctx context.Context, opts QueryOpts) ([]*models.Project, int, error)
}
