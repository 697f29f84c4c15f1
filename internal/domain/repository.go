package domain

import (
	"context"
)

// PredictionRepository defines the interface for prediction log persistence
type PredictionRepository interface {
	// SavePredictionLog persists a prediction request/response
	SavePredictionLog(ctx context.Context, entry PredictionLog) error

	// GetRecentPredictions returns up to limit logs, newest first
	GetRecentPredictions(ctx context.Context, limit int) ([]PredictionLog, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
