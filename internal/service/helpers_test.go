package service

import (
	"io"
	"log/slog"

	"github.com/weathercast/backend/internal/logger"
)

// scriptedRand replays fixed draws, cycling when exhausted
type scriptedRand struct {
	uniform []float64
	normal  []float64
	ui, ni  int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.uniform) == 0 {
		return 0
	}
	v := s.uniform[s.ui%len(s.uniform)]
	s.ui++
	return v
}

func (s *scriptedRand) NormFloat64() float64 {
	if len(s.normal) == 0 {
		return 0
	}
	v := s.normal[s.ni%len(s.normal)]
	s.ni++
	return v
}

func testLogger() *logger.Logger {
	return logger.NewLogger(slog.LevelDebug, io.Discard)
}
