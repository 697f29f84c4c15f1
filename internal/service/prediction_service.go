package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/weathercast/backend/internal/domain"
	"github.com/weathercast/backend/internal/logger"
)

// Predictor produces a prediction for validated input
type Predictor interface {
	Predict(ctx context.Context, in domain.WeatherInput) (domain.PredictionResult, error)
}

// PredictionService validates input, obtains a prediction, projects it for
// charting and logs it
type PredictionService struct {
	predictor Predictor
	repo      PredictionRepository
	clock     clockwork.Clock
	log       *logger.Logger

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewPredictionService creates a new prediction service
func NewPredictionService(
	predictor Predictor,
	repo PredictionRepository,
	clock clockwork.Clock,
	log *logger.Logger,
) *PredictionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PredictionService{
		predictor: predictor,
		repo:      repo,
		clock:     clock,
		log:       log,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *PredictionService) WaitBackground() {
	s.wgBg.Wait()
}

// Predict runs the full prediction pipeline for in. Invalid input is rejected
// with domain.ErrInvalidInput before the predictor is called.
func (s *PredictionService) Predict(ctx context.Context, in domain.WeatherInput) (domain.PredictionOutcome, error) {
	if err := ValidateInput(in); err != nil {
		return domain.PredictionOutcome{}, err
	}

	result, err := s.predictor.Predict(ctx, in)
	if err != nil {
		s.log.Error("prediction failed", logger.Err(err))
		return domain.PredictionOutcome{}, fmt.Errorf("%w: %w", domain.ErrPredictionFailed, err)
	}

	outcome := domain.PredictionOutcome{
		ID:        uuid.NewString(),
		Result:    result,
		Chart:     ProjectChart(&result),
		CreatedAt: s.clock.Now().UTC(),
	}

	// Persist the prediction asynchronously (tracked for graceful shutdown)
	entry := domain.PredictionLog{
		ID:        outcome.ID,
		Input:     in,
		Result:    result,
		CreatedAt: outcome.CreatedAt,
	}
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SavePredictionLog(bgCtx, entry); err != nil {
			s.log.Error("failed to save prediction log", slog.String("id", entry.ID), logger.Err(err))
		}
	}()

	return outcome, nil
}

// History returns up to limit recent predictions, newest first
func (s *PredictionService) History(ctx context.Context, limit int) ([]domain.PredictionLog, error) {
	logs, err := s.repo.GetRecentPredictions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("prediction: failed to load history: %w", err)
	}
	return logs, nil
}

// Health checks the prediction log storage
func (s *PredictionService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}
