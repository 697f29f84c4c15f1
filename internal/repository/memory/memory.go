package memory

import (
	"context"
	"sync"

	"github.com/weathercast/backend/internal/domain"
)

// Repository implements domain.PredictionRepository in process memory.
// It is used when no database is configured.
type Repository struct {
	mu   sync.RWMutex
	logs []domain.PredictionLog

	// maxHistory caps the number of retained logs, oldest dropped first
	maxHistory int
}

// NewRepository creates a new in-memory repository.
// If maxHistory is <= 0, it is treated as unlimited.
func NewRepository(maxHistory int) *Repository {
	return &Repository{maxHistory: maxHistory}
}

// SavePredictionLog appends a prediction log and enforces retention
func (r *Repository) SavePredictionLog(ctx context.Context, entry domain.PredictionLog) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = append(r.logs, entry)
	if r.maxHistory > 0 && len(r.logs) > r.maxHistory {
		over := len(r.logs) - r.maxHistory
		r.logs = append([]domain.PredictionLog(nil), r.logs[over:]...)
	}
	return nil
}

// GetRecentPredictions returns up to limit logs, newest first
func (r *Repository) GetRecentPredictions(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.logs) {
		limit = len(r.logs)
	}
	results := make([]domain.PredictionLog, 0, limit)
	for i := len(r.logs) - 1; i >= 0 && len(results) < limit; i-- {
		results = append(results, r.logs[i])
	}
	return results, nil
}

// Health always returns nil for the in-memory store
func (r *Repository) Health(ctx context.Context) error {
	return nil
}
