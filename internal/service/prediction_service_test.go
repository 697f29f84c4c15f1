package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/weathercast/backend/internal/domain"
)

type stubPredictor struct {
	mu     sync.Mutex
	calls  int
	result domain.PredictionResult
	err    error
}

func (s *stubPredictor) Predict(_ context.Context, _ domain.WeatherInput) (domain.PredictionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.result, s.err
}

type recordingRepo struct {
	mu    sync.Mutex
	saved []domain.PredictionLog
	err   error
}

func (r *recordingRepo) SavePredictionLog(_ context.Context, entry domain.PredictionLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, entry)
	return r.err
}

func (r *recordingRepo) GetRecentPredictions(_ context.Context, limit int) ([]domain.PredictionLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if limit > len(r.saved) {
		limit = len(r.saved)
	}
	return r.saved[:limit], nil
}

func (r *recordingRepo) Health(context.Context) error { return nil }

func TestPredictionService_Predict(t *testing.T) {
	valid := domain.WeatherInput{Temperature: 25, Humidity: 60, Pressure: 1013, WindSpeed: 10}

	t.Run("invalid humidity never reaches the predictor", func(t *testing.T) {
		for _, humidity := range []float64{-1, 100.01, 250} {
			predictor := &stubPredictor{}
			svc := NewPredictionService(predictor, &recordingRepo{}, nil, testLogger())
			in := valid
			in.Humidity = humidity

			_, err := svc.Predict(context.Background(), in)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("humidity %g: expected ErrInvalidInput, got %v", humidity, err)
			}
			if predictor.calls != 0 {
				t.Errorf("humidity %g: expected no predictor calls, got %d", humidity, predictor.calls)
			}
		}
	})
	t.Run("successful prediction is projected and logged", func(t *testing.T) {
		predictor := &stubPredictor{result: remoteResult()}
		repo := &recordingRepo{}
		clock := clockwork.NewFakeClockAt(saturday)
		svc := NewPredictionService(predictor, repo, clock, testLogger())

		outcome, err := svc.Predict(context.Background(), valid)
		if err != nil {
			t.Fatalf("prediction failed: %s", err)
		}
		if outcome.ID == "" {
			t.Error("expected outcome to carry an ID")
		}
		if !outcome.CreatedAt.Equal(saturday) {
			t.Errorf("expected creation time %s, got %s", saturday, outcome.CreatedAt)
		}
		if len(outcome.Chart) != len(outcome.Result.Forecast) {
			t.Errorf("expected one chart point per forecast day, got %d", len(outcome.Chart))
		}

		svc.WaitBackground()
		if len(repo.saved) != 1 {
			t.Fatalf("expected one saved log, got %d", len(repo.saved))
		}
		if repo.saved[0].ID != outcome.ID || repo.saved[0].Input != valid {
			t.Errorf("unexpected saved log: %+v", repo.saved[0])
		}
	})
	t.Run("predictor failure is wrapped", func(t *testing.T) {
		predictor := &stubPredictor{err: domain.ErrRemoteUnavailable}
		repo := &recordingRepo{}
		svc := NewPredictionService(predictor, repo, nil, testLogger())

		_, err := svc.Predict(context.Background(), valid)
		if !errors.Is(err, domain.ErrPredictionFailed) || !errors.Is(err, domain.ErrRemoteUnavailable) {
			t.Errorf("expected wrapped prediction failure, got %v", err)
		}
		svc.WaitBackground()
		if len(repo.saved) != 0 {
			t.Errorf("expected nothing to be logged, got %d entries", len(repo.saved))
		}
	})
	t.Run("storage failure does not fail the prediction", func(t *testing.T) {
		svc := NewPredictionService(&stubPredictor{result: remoteResult()}, &recordingRepo{err: errors.New("disk full")},
			nil, testLogger())
		if _, err := svc.Predict(context.Background(), valid); err != nil {
			t.Errorf("expected prediction to succeed, got %s", err)
		}
		svc.WaitBackground()
	})
}

func TestPredictionService_History(t *testing.T) {
	repo := &recordingRepo{saved: []domain.PredictionLog{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	svc := NewPredictionService(&stubPredictor{}, repo, nil, testLogger())

	logs, err := svc.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("history failed: %s", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(logs))
	}

	repo.err = errors.New("connection reset")
	if _, err = svc.History(context.Background(), 2); err == nil {
		t.Error("expected history to fail")
	}
}
