package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/weathercast/backend/internal/domain"
	"github.com/weathercast/backend/internal/logger"
)

// DefaultMLTimeout bounds a single call to the ML service
const DefaultMLTimeout = 10 * time.Second

// breakerTripFailures is the number of consecutive failures that opens the circuit
const breakerTripFailures = 5

// FallbackPredictor produces a prediction without the ML service
type FallbackPredictor interface {
	Predict(in domain.WeatherInput) domain.PredictionResult
}

// BridgeConfig configures the ML bridge
type BridgeConfig struct {
	// Endpoint is the base URL of the ML service, /predict is appended
	Endpoint string
	// FallbackEnabled masks ML service failures with a local prediction
	FallbackEnabled bool
	Timeout         time.Duration
	BreakerEnabled  bool
	// RateLimit is the maximum outbound requests per second, <= 0 disables it
	RateLimit float64
	RateBurst int
}

// MLBridge handles communication with the ML prediction service
type MLBridge struct {
	cfg        BridgeConfig
	httpClient *http.Client
	fallback   FallbackPredictor
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	log        *logger.Logger
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(cfg BridgeConfig, fallback FallbackPredictor, log *logger.Logger) *MLBridge {
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultMLTimeout
	}

	b := &MLBridge{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		fallback: fallback,
		log:      log,
	}

	if cfg.BreakerEnabled {
		b.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ml-service",
			MaxRequests: 1,
			Interval:    1 * time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTripFailures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Warn("circuit breaker state changed", slog.String("breaker", name),
					slog.String("from", from.String()), slog.String("to", to.String()))
			},
		})
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		b.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return b
}

// Predict asks the ML service for a prediction. When the service is unavailable
// and fallback is enabled, the mock prediction is returned instead (IsMock is set).
// Otherwise the returned error wraps domain.ErrRemoteUnavailable.
func (b *MLBridge) Predict(ctx context.Context, in domain.WeatherInput) (domain.PredictionResult, error) {
	prediction, err := b.callRemote(ctx, in)
	if err == nil {
		prediction.IsMock = false
		return prediction, nil
	}

	if b.cfg.FallbackEnabled && b.fallback != nil {
		b.log.Warn("ml service unavailable, using mock prediction",
			slog.String("endpoint", b.cfg.Endpoint), logger.Err(err))
		return b.fallback.Predict(in), nil
	}

	b.log.Error("ml service unavailable", slog.String("endpoint", b.cfg.Endpoint), logger.Err(err))
	return domain.PredictionResult{}, fmt.Errorf("ml_bridge: %w: %w", domain.ErrRemoteUnavailable, err)
}

// callRemote performs a single POST to the ML service. Any failure, including
// a non-2xx status or an undecodable body, is returned as an error.
func (b *MLBridge) callRemote(ctx context.Context, in domain.WeatherInput) (domain.PredictionResult, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return domain.PredictionResult{}, fmt.Errorf("ml_bridge: rate limit wait canceled: %w", err)
		}
	}

	body, err := json.Marshal(domain.NewPredictionRequest(in))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: failed to marshal request: %w", err)
	}

	do := func() (interface{}, error) {
		return b.post(ctx, body)
	}

	var result interface{}
	if b.breaker != nil {
		result, err = b.breaker.Execute(do)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return domain.PredictionResult{}, fmt.Errorf("ml_bridge: circuit breaker open: %w", err)
		}
	} else {
		result, err = do()
	}
	if err != nil {
		return domain.PredictionResult{}, err
	}

	prediction, ok := result.(domain.PredictionResult)
	if !ok {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: unexpected result type %T", result)
	}
	return prediction, nil
}

func (b *MLBridge) post(ctx context.Context, body []byte) (domain.PredictionResult, error) {
	url := fmt.Sprintf("%s/predict", b.cfg.Endpoint)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: unexpected status %d", resp.StatusCode)
	}

	var prediction domain.PredictionResult
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return domain.PredictionResult{}, fmt.Errorf("ml_bridge: failed to decode response: %w", err)
	}

	return prediction, nil
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.cfg.Endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
