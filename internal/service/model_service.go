package service

import (
	"github.com/weathercast/backend/internal/domain"
)

// ModelService answers the ML service /predict contract locally, so the backend
// can act as its own prediction endpoint
type ModelService struct {
	rnd        RandSource
	forecaster *ForecastGenerator
}

// NewModelService creates a new model service
func NewModelService(rnd RandSource, forecaster *ForecastGenerator) *ModelService {
	if rnd == nil {
		rnd = DefaultRand()
	}
	if forecaster == nil {
		forecaster = NewForecastGenerator(nil, nil)
	}
	return &ModelService{rnd: rnd, forecaster: forecaster}
}

// Predict classifies the input and generates a forecast. The headline
// temperature is the input temperature.
func (s *ModelService) Predict(in domain.WeatherInput) domain.PredictionResult {
	weatherType, _ := Classify(in)

	return domain.PredictionResult{
		WeatherType: weatherType,
		Probability: 0.7 + s.rnd.Float64()*0.29,
		Temperature: in.Temperature,
		Conditions: domain.Conditions{
			Humidity:      in.Humidity,
			Precipitation: in.Precipitation,
			WindSpeed:     in.WindSpeed,
		},
		Forecast: s.forecaster.Generate(weatherType, in.Temperature),
	}
}
