package utils

import (
	"math"
)

// RoundHalfUp rounds to the nearest integer, with halves rounded towards +Inf
// (so -2.5 becomes -2, not -3 as with math.Round)
func RoundHalfUp(value float64) float64 {
	return math.Floor(value + 0.5)
}

// Clamp limits a value between min and max
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ClampInt limits an integer between min and max
func ClampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// RoundTo rounds a float to specified decimal places
func RoundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
