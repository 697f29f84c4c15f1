package service

import (
	"github.com/jonboulle/clockwork"

	"github.com/weathercast/backend/internal/domain"
	"github.com/weathercast/backend/pkg/utils"
)

// seasonalNormal is the temperature (degC) the random walk reverts towards
const seasonalNormal = 20.0

// ForecastGenerator produces a multi-day forecast as a mean-reverting random walk.
// The weather type persists from day to day and drifts by at most one step.
type ForecastGenerator struct {
	rnd   NormRandSource
	clock clockwork.Clock
}

// NewForecastGenerator creates a new forecast generator
func NewForecastGenerator(rnd NormRandSource, clock clockwork.Clock) *ForecastGenerator {
	if rnd == nil {
		rnd = DefaultRand()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ForecastGenerator{rnd: rnd, clock: clock}
}

// Generate returns a forecast for the days following today, starting from the
// current weather type and temperature
func (g *ForecastGenerator) Generate(current domain.WeatherType, temperature float64) []domain.ForecastDay {
	idx := current.Index()
	if idx < 0 {
		idx = domain.WeatherCloudy.Index()
	}
	maxIdx := len(domain.WeatherTypes) - 1

	temp := temperature
	labels := forecastDayLabels(g.clock.Now())
	forecast := make([]domain.ForecastDay, 0, len(labels))
	for i, day := range labels {
		step := float64(i)

		// Uncertainty grows with distance
		if g.rnd.Float64() > 0.7+0.3/(step+1) {
			idx = utils.ClampInt(idx+g.drift(), 0, maxIdx)
		}

		variation := g.rnd.NormFloat64() * (1 + step*0.5)
		tempHigh := utils.RoundTo(temp+variation+step*0.2, 1)
		tempLow := utils.RoundTo(tempHigh-(3+g.rnd.Float64()*5), 1)

		temp = temp*0.8 + seasonalNormal*0.2 + g.rnd.NormFloat64()

		forecast = append(forecast, domain.ForecastDay{
			Day:         day,
			WeatherType: domain.WeatherTypes[idx],
			TempHigh:    tempHigh,
			TempLow:     tempLow,
		})
	}
	return forecast
}

// drift returns -1, 0 or +1 with probabilities 0.3, 0.4 and 0.3
func (g *ForecastGenerator) drift() int {
	p := g.rnd.Float64()
	switch {
	case p < 0.3:
		return -1
	case p < 0.7:
		return 0
	default:
		return 1
	}
}
