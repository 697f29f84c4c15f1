package service

import (
	"math"

	"github.com/weathercast/backend/internal/domain"
)

// ProjectChart derives one chart point per forecast day. Humidity and
// precipitation are perturbed deterministically by the day index.
func ProjectChart(result *domain.PredictionResult) []domain.ChartPoint {
	if result == nil {
		return nil
	}

	points := make([]domain.ChartPoint, 0, len(result.Forecast))
	for i, day := range result.Forecast {
		idx := float64(i)
		points = append(points, domain.ChartPoint{
			Day:           day.Day,
			Temperature:   (day.TempHigh + day.TempLow) / 2,
			Humidity:      result.Conditions.Humidity + math.Sin(idx)*10,
			Precipitation: result.Conditions.Precipitation * (math.Cos(idx)*0.5 + 0.5),
		})
	}
	return points
}
