package models

import (
	"time"

	"github.com/google/uuid"
)

// Project statuses.
const (
	ProjectStatusComplete = "complete"
	ProjectStatusNoOffers = "no_offers"
)

// Project is the persisted record of one BOM realization run: the parsed
// items, the suggestions produced, and when it happened. Projects are the
// audit trail consumed by the projects API; they are never mutated after
// creation.
type Project struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Status    string              `json:"status"`
	Result    BomSuggestionResult `json:"result"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewProject wraps a realization result as a persistable project.
// Status reflects whether any suggestion could be produced at all.
func NewProject(name string, result BomSuggestionResult) *Project {
	status := ProjectStatusComplete
	if len(result.Suggestions) == 0 {
		status = ProjectStatusNoOffers
	}
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		Status:    status,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
}

// BestScore returns the highest suggestion score, or 0 when there are none.
// Suggestions are ordered by score, so the first entry is the best.
func (p *Project) BestScore() float64 {
	if len(p.Result.Suggestions) == 0 {
		return 0
	}
	return p.Result.Suggestions[0].Score
}
