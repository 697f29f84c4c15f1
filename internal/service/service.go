package service

import (
	"math/rand"
	"time"

	"github.com/weathercast/backend/internal/domain"
)

// PredictionRepository is re-exported from domain for convenience
type PredictionRepository = domain.PredictionRepository

// RandSource yields uniformly distributed values in [0, 1)
type RandSource interface {
	Float64() float64
}

// NormRandSource additionally yields standard normally distributed values
type NormRandSource interface {
	RandSource
	NormFloat64() float64
}

// globalRand draws from the goroutine-safe top-level math/rand source
type globalRand struct{}

func (globalRand) Float64() float64     { return rand.Float64() }
func (globalRand) NormFloat64() float64 { return rand.NormFloat64() }

// DefaultRand returns the process-wide random source
func DefaultRand() NormRandSource {
	return globalRand{}
}

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// forecastDayLabels returns the short names of the weekdays following now,
// one per forecast day, never including today
func forecastDayLabels(now time.Time) []string {
	labels := make([]string, 0, domain.ForecastDays)
	today := int(now.Weekday())
	for i := 1; i <= domain.ForecastDays; i++ {
		labels = append(labels, weekdayLabels[(today+i)%7])
	}
	return labels
}
