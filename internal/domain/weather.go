package domain

import "time"

// WeatherType is a categorical forecast label
type WeatherType string

const (
	WeatherSunny        WeatherType = "Sunny"
	WeatherPartlyCloudy WeatherType = "Partly Cloudy"
	WeatherCloudy       WeatherType = "Cloudy"
	WeatherRainy        WeatherType = "Rainy"
	WeatherThunderstorm WeatherType = "Thunderstorm"
	WeatherSnowy        WeatherType = "Snowy"
	WeatherDrizzle      WeatherType = "Drizzle"
	WeatherFoggy        WeatherType = "Foggy"
)

// WeatherTypes lists every label in rotation order. The order is significant:
// forecast generators step through it by index.
var WeatherTypes = []WeatherType{
	WeatherSunny,
	WeatherPartlyCloudy,
	WeatherCloudy,
	WeatherRainy,
	WeatherThunderstorm,
	WeatherSnowy,
	WeatherDrizzle,
	WeatherFoggy,
}

// Index returns the position of t in WeatherTypes, or -1 if t is unknown
func (t WeatherType) Index() int {
	for i, wt := range WeatherTypes {
		if wt == t {
			return i
		}
	}
	return -1
}

// ForecastDays is the number of daily entries a locally generated forecast carries
const ForecastDays = 5

// WeatherInput represents user supplied weather parameters
type WeatherInput struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity" validate:"gte=0,lte=100"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"windSpeed"`
	Precipitation float64 `json:"precipitation"`
}

// Conditions echoes the input conditions a prediction was based on
type Conditions struct {
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
	WindSpeed     float64 `json:"windSpeed"`
}

// ForecastDay is a single daily forecast entry
type ForecastDay struct {
	Day         string      `json:"day"`
	WeatherType WeatherType `json:"weatherType"`
	TempHigh    float64     `json:"tempHigh"`
	TempLow     float64     `json:"tempLow"`
}

// PredictionResult represents a prediction produced by the ML service or the mock predictor
type PredictionResult struct {
	WeatherType WeatherType   `json:"weatherType"`
	Probability float64       `json:"probability"`
	Temperature float64       `json:"temperature"`
	Conditions  Conditions    `json:"conditions"`
	Forecast    []ForecastDay `json:"forecast"`
	IsMock      bool          `json:"isMock"`
}

// ChartPoint is a single chart-ready sample derived from a forecast day
type ChartPoint struct {
	Day           string  `json:"day"`
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Precipitation float64 `json:"precipitation"`
}

// PredictionOutcome is what the API hands back for a prediction request
type PredictionOutcome struct {
	ID        string           `json:"id"`
	Result    PredictionResult `json:"result"`
	Chart     []ChartPoint     `json:"chart"`
	CreatedAt time.Time        `json:"created_at"`
}

// PredictionLog is a persisted prediction request/response pair
type PredictionLog struct {
	ID        string           `json:"id"`
	Input     WeatherInput     `json:"input"`
	Result    PredictionResult `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}

// PredictionRequest is the wire body sent to the ML service's /predict endpoint
type PredictionRequest struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	Pressure      float64 `json:"pressure"`
	WindSpeed     float64 `json:"wind_speed"`
	Precipitation float64 `json:"precipitation"`
}

// NewPredictionRequest converts user input to its wire representation
func NewPredictionRequest(in WeatherInput) PredictionRequest {
	return PredictionRequest{
		Temperature:   in.Temperature,
		Humidity:      in.Humidity,
		Pressure:      in.Pressure,
		WindSpeed:     in.WindSpeed,
		Precipitation: in.Precipitation,
	}
}

// Input converts the wire body back to a WeatherInput
func (r PredictionRequest) Input() WeatherInput {
	return WeatherInput{
		Temperature:   r.Temperature,
		Humidity:      r.Humidity,
		Pressure:      r.Pressure,
		WindSpeed:     r.WindSpeed,
		Precipitation: r.Precipitation,
	}
}
