package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/weathercast/backend/internal/logger"
)

type fakeChecker struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (f *fakeChecker) Health(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeChecker) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestMonitor_Check(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	checker := &fakeChecker{}
	m := NewMonitor(checker, time.Minute, logger.NewLogger(slog.LevelInfo, buf))

	if s := m.Status(); s.Checked || s.Reachable || !s.LastCheck.IsZero() {
		t.Errorf("expected empty status before the first probe, got %+v", s)
	}

	m.Check()
	s := m.Status()
	if !s.Checked || !s.Reachable {
		t.Errorf("expected reachable status, got %+v", s)
	}
	if s.LastCheck.IsZero() {
		t.Error("expected last check time to be recorded")
	}
	if !bytes.Contains(buf.Bytes(), []byte("ml service is reachable")) {
		t.Errorf("expected reachability to be logged, got %q", buf.String())
	}

	checker.setErr(errors.New("connection refused"))
	m.Check()
	if m.Status().Reachable {
		t.Error("expected service to be unreachable")
	}
	if !bytes.Contains(buf.Bytes(), []byte("connection refused")) {
		t.Errorf("expected probe error to be logged, got %q", buf.String())
	}
}

func TestMonitor_StartStop(t *testing.T) {
	checker := &fakeChecker{}
	m := NewMonitor(checker, time.Hour, logger.NewLogger(slog.LevelError, bytes.NewBuffer(nil)))
	if err := m.Start(); err != nil {
		t.Fatalf("failed to start monitor: %s", err)
	}
	defer m.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for !m.Status().Checked && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if !m.Status().Checked {
		t.Fatal("expected the first probe to run on start")
	}
	if checker.callCount() < 1 {
		t.Error("expected the checker to be called")
	}
}
