package domain

import "errors"

var (
	// ErrInvalidInput is returned when user supplied weather parameters are rejected
	ErrInvalidInput = errors.New("invalid input")

	// ErrRemoteUnavailable is returned when the ML service cannot produce a prediction
	// and fallback is disabled
	ErrRemoteUnavailable = errors.New("ml service unavailable")

	// ErrPredictionFailed wraps any failure to produce a prediction for a valid input
	ErrPredictionFailed = errors.New("prediction failed")
)
