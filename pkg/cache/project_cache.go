package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ProjectCacheTTL is the time-to-live for cached project summaries.
	ProjectCacheTTL = 24 * time.Hour

	projectCacheKeyPrefix = "project"
)

// CachedProjectSummary is the denormalized read model for a realized BOM
// project. Fields are stored as a Redis hash; the full result document stays
// in Postgres and is only loaded on detail reads.
type CachedProjectSummary struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	ItemCount       int       `json:"item_count"`
	SuggestionCount int       `json:"suggestion_count"`
	BestScore       float64   `json:"best_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// ProjectCache provides structured read/write operations for project
// summaries. Key format: "project:{projectID}"
type ProjectCache struct {
	client *RedisClient
}

// NewProjectCache creates a new ProjectCache backed by the given RedisClient.
func NewProjectCache(r *RedisClient) *ProjectCache {
	return &ProjectCache{client: r}
}

// Get retrieves a cached project summary by ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ProjectCache) Get(ctx context.Context, projectID uuid.UUID) (*CachedProjectSummary, error) {
	vals, err := c.client.Client().HGetAll(ctx, c.key(projectID)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	itemCount, err := strconv.Atoi(vals["item_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_count: %w", err)
	}
	suggestionCount, err := strconv.Atoi(vals["suggestion_count"])
	if err != nil {
		return nil, fmt.Errorf("cache parse suggestion_count: %w", err)
	}
	bestScore, err := strconv.ParseFloat(vals["best_score"], 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse best_score: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedProjectSummary{
		ID:              id,
		Name:            vals["name"],
		Status:          vals["status"],
		ItemCount:       itemCount,
		SuggestionCount: suggestionCount,
		BestScore:       bestScore,
		CreatedAt:       createdAt,
	}, nil
}

// Set writes a project summary as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ProjectCache) Set(ctx context.Context, summary *CachedProjectSummary) error {
	key := c.key(summary.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", summary.ID.String(),
		"name", summary.Name,
		"status", summary.Status,
		"item_count", strconv.Itoa(summary.ItemCount),
		"suggestion_count", strconv.Itoa(summary.SuggestionCount),
		"best_score", strconv.FormatFloat(summary.BestScore, 'f', -1, 64),
		"created_at", summary.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ProjectCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached project summary.
func (c *ProjectCache) Delete(ctx context.Context, projectID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(projectID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "project:{projectID}"
func (c *ProjectCache) key(projectID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", projectCacheKeyPrefix, projectID)
}
