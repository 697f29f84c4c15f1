package service

import (
	"math"

	"github.com/jonboulle/clockwork"

	"github.com/weathercast/backend/internal/domain"
	"github.com/weathercast/backend/pkg/utils"
)

// classificationRule maps a condition on the input to a weather type and a
// temperature adjustment
type classificationRule struct {
	match       func(in domain.WeatherInput) bool
	weatherType domain.WeatherType
	modifier    float64
}

// classificationRules are evaluated in order, the first match wins.
// Rainy shadows Thunderstorm for heavy, windy precipitation.
var classificationRules = []classificationRule{
	{
		match:       func(in domain.WeatherInput) bool { return in.Temperature > 30 && in.Humidity < 50 },
		weatherType: domain.WeatherSunny,
		modifier:    2,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Precipitation > 5 },
		weatherType: domain.WeatherRainy,
		modifier:    -2,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Precipitation > 1 && in.Precipitation <= 5 },
		weatherType: domain.WeatherDrizzle,
		modifier:    -1,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Humidity > 80 && in.Temperature < 5 },
		weatherType: domain.WeatherSnowy,
		modifier:    -4,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Humidity > 90 && in.WindSpeed < 5 },
		weatherType: domain.WeatherFoggy,
		modifier:    -1,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Precipitation > 10 && in.WindSpeed > 30 },
		weatherType: domain.WeatherThunderstorm,
		modifier:    -3,
	},
	{
		match:       func(in domain.WeatherInput) bool { return in.Humidity > 60 && in.Temperature > 20 },
		weatherType: domain.WeatherPartlyCloudy,
		modifier:    0,
	},
}

// Classify returns the weather type for the input and the temperature modifier
// that goes with it. Inputs matching no rule are Cloudy.
func Classify(in domain.WeatherInput) (domain.WeatherType, float64) {
	for _, r := range classificationRules {
		if r.match(in) {
			return r.weatherType, r.modifier
		}
	}
	return domain.WeatherCloudy, 0
}

// MockPredictor generates plausible predictions locally when the ML service
// cannot be used
type MockPredictor struct {
	rnd   RandSource
	clock clockwork.Clock
}

// NewMockPredictor creates a new mock predictor. A nil rnd or clock selects
// the process-wide random source and the wall clock.
func NewMockPredictor(rnd RandSource, clock clockwork.Clock) *MockPredictor {
	if rnd == nil {
		rnd = DefaultRand()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MockPredictor{rnd: rnd, clock: clock}
}

// Predict builds a prediction with a 5-day forecast for the input
func (p *MockPredictor) Predict(in domain.WeatherInput) domain.PredictionResult {
	predicted, modifier := Classify(in)
	predictedIdx := predicted.Index()

	labels := forecastDayLabels(p.clock.Now())
	forecast := make([]domain.ForecastDay, 0, len(labels))
	for i, day := range labels {
		idx := float64(i)
		variance := math.Sin(idx) * 3
		tempHigh := utils.RoundHalfUp(in.Temperature + modifier + variance + idx*0.5)
		tempLow := utils.RoundHalfUp(tempHigh - (3 + p.rnd.Float64()*5))

		// 30% of the days rotate away from the headline type
		weatherType := predicted
		if p.rnd.Float64() > 0.7 {
			weatherType = domain.WeatherTypes[(predictedIdx+i)%len(domain.WeatherTypes)]
		}

		forecast = append(forecast, domain.ForecastDay{
			Day:         day,
			WeatherType: weatherType,
			TempHigh:    tempHigh,
			TempLow:     tempLow,
		})
	}

	return domain.PredictionResult{
		WeatherType: predicted,
		Probability: 0.7 + p.rnd.Float64()*0.29,
		Temperature: utils.RoundHalfUp(in.Temperature + modifier),
		Conditions: domain.Conditions{
			Humidity:      in.Humidity,
			Precipitation: in.Precipitation,
			WindSpeed:     in.WindSpeed,
		},
		Forecast: forecast,
		IsMock:   true,
	}
}
