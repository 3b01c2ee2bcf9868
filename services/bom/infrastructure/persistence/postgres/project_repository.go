// Package postgres persists realized BOM projects. The full suggestion
// result is stored as a JSONB document; relational columns carry only what
// list views and filters need.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/partsflow/partsflow/pkg/database"
	"github.com/partsflow/partsflow/pkg/events"
	bomdomain "github.com/partsflow/partsflow/services/bom/domain"
	domainevents "github.com/partsflow/partsflow/services/bom/domain/events"
	"github.com/partsflow/partsflow/services/bom/domain/models"
	"github.com/partsflow/partsflow/services/bom/domain/repositories"
)

// ProjectRepository implements repositories.ProjectRepository against PostgreSQL.
type ProjectRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewProjectRepository returns a ProjectRepository backed by the given
// connection pool and event bus. The bus is used to publish a
// BomRealizedEvent in the same transaction as the save (outbox pattern).
func NewProjectRepository(database *database.Database, bus *events.EventBus) *ProjectRepository {
	return &ProjectRepository{db: database, bus: bus}
}

// Save persists a realized project and publishes a BomRealizedEvent within
// the same transaction.
func (r *ProjectRepository) Save(ctx context.Context, project *models.Project) error {
	result, err := json.Marshal(project.Result)
	if err != nil {
		return fmt.Errorf("encode project result: %w", err)
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO bom_projects (id, name, status, result, created_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			project.ID, project.Name, project.Status, result, project.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert project: %w", err)
		}

		if r.bus != nil {
			if err := r.publishRealized(tx, project); err != nil {
				return fmt.Errorf("publish bom realized: %w", err)
			}
		}
		return nil
	})
}

// GetByID retrieves a project by ID. Returns ErrProjectNotFound if not found.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, status, result, created_at FROM bom_projects WHERE id = $1`, id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bomdomain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("query project: %w", err)
	}
	return project, nil
}

// List retrieves a paginated list of projects, newest first, plus total count.
func (r *ProjectRepository) List(ctx context.Context, opts repositories.QueryOpts) ([]*models.Project, int, error) {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, name, status, result, created_at
		 FROM bom_projects ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		opts.Limit, opts.Offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate projects: %w", err)
	}

	var total int
	if err := r.db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM bom_projects`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}
	return projects, total, nil
}

func (r *ProjectRepository) publishRealized(tx *sql.Tx, project *models.Project) error {
	event := domainevents.BomRealizedEvent{
		EventID:         uuid.New(),
		Version:         1,
		ProjectID:       project.ID,
		ProjectName:     project.Name,
		Status:          project.Status,
		ItemCount:       len(project.Result.OriginalItems),
		UnmatchedCount:  len(project.Result.UnmatchedItems),
		SuggestionCount: len(project.Result.Suggestions),
		BestScore:       project.BestScore(),
		OccurredAt:      project.CreatedAt,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("event_id", event.EventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := r.bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(domainevents.TopicBomRealized, msg)
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	var (
		project models.Project
		result  []byte
	)
	if err := s.Scan(&project.ID, &project.Name, &project.Status, &result, &project.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &project.Result); err != nil {
		return nil, fmt.Errorf("decode project result: %w", err)
	}
	return &project, nil
}
