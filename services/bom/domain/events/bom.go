package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBomRealized is the Watermill topic published when a BOM realization
// run completes and its project row is persisted.
const TopicBomRealized = "bom.realized"

// BomRealizedEvent is published transactionally with the project row.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicBomRealized).
type BomRealizedEvent struct {
	EventID         uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version         int       `json:"version"`  // Schema version; increment on breaking changes
	ProjectID       uuid.UUID `json:"project_id"`
	ProjectName     string    `json:"project_name"`
	Status          string    `json:"status"`
	ItemCount       int       `json:"item_count"`
	UnmatchedCount  int       `json:"unmatched_count"`
	SuggestionCount int       `json:"suggestion_count"`
	BestScore       float64   `json:"best_score"`
	OccurredAt      time.Time `json:"occurred_at"`
}
