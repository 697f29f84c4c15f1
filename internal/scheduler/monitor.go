package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/atomic"

	"github.com/weathercast/backend/internal/logger"
)

// probeTimeout bounds a single health probe
const probeTimeout = 5 * time.Second

// HealthChecker is implemented by remote dependencies that can be probed
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Status is a snapshot of the most recent health probe
type Status struct {
	Checked   bool      `json:"checked"`
	Reachable bool      `json:"reachable"`
	LastCheck time.Time `json:"last_check,omitempty"`
}

// Monitor periodically probes the ML service and records whether it is reachable
type Monitor struct {
	scheduler *gocron.Scheduler
	checker   HealthChecker
	interval  time.Duration
	log       *logger.Logger

	checked   *atomic.Bool
	reachable *atomic.Bool
	lastCheck *atomic.Int64 // unix nanoseconds
}

// NewMonitor creates a new Monitor
func NewMonitor(checker HealthChecker, interval time.Duration, log *logger.Logger) *Monitor {
	return &Monitor{
		scheduler: gocron.NewScheduler(time.UTC),
		checker:   checker,
		interval:  interval,
		log:       log,
		checked:   atomic.NewBool(false),
		reachable: atomic.NewBool(false),
		lastCheck: atomic.NewInt64(0),
	}
}

// Start schedules the probe job and starts the underlying scheduler.
// The first probe runs immediately.
func (m *Monitor) Start() error {
	interval := m.interval
	if interval < time.Second {
		interval = time.Minute
	}

	if _, err := m.scheduler.Every(interval).Do(m.Check); err != nil {
		return err
	}

	m.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future probes
func (m *Monitor) Stop() {
	if m.scheduler != nil {
		m.scheduler.Stop()
	}
}

// Check runs a single probe and records the result, logging reachability changes
func (m *Monitor) Check() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	err := m.checker.Health(ctx)
	ok := err == nil

	m.lastCheck.Store(time.Now().UnixNano())
	first := !m.checked.Swap(true)
	prev := m.reachable.Swap(ok)

	switch {
	case !first && prev == ok:
		m.log.Debug("ml service health probe", slog.Bool("reachable", ok))
	case ok:
		m.log.Info("ml service is reachable")
	default:
		m.log.Warn("ml service is unreachable", logger.Err(err))
	}
}

// Status returns the result of the most recent probe
func (m *Monitor) Status() Status {
	s := Status{
		Checked:   m.checked.Load(),
		Reachable: m.reachable.Load(),
	}
	if ns := m.lastCheck.Load(); ns > 0 {
		s.LastCheck = time.Unix(0, ns).UTC()
	}
	return s
}
