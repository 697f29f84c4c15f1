package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/weathercast/backend/internal/domain"
	"github.com/weathercast/backend/internal/scheduler"
	"github.com/weathercast/backend/internal/service"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// MLStatusProvider reports the last known ML service reachability
type MLStatusProvider interface {
	Status() scheduler.Status
}

// Handler contains all HTTP handlers
type Handler struct {
	predictions *service.PredictionService
	model       *service.ModelService
	mlStatus    MLStatusProvider
}

// NewHandler creates a new handler
func NewHandler(predictions *service.PredictionService, model *service.ModelService, mlStatus MLStatusProvider) *Handler {
	return &Handler{
		predictions: predictions,
		model:       model,
		mlStatus:    mlStatus,
	}
}

// Root reports that the API is up
func (h *Handler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Weather Prediction API is running",
	})
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.predictions.Health(c.UserContext()); err != nil {
		storage = "unavailable"
	}

	resp := fiber.Map{
		"status":  "ok",
		"service": "weather-prediction-backend",
		"version": "1.0.0",
		"storage": storage,
	}
	if h.mlStatus != nil {
		resp["ml_service"] = h.mlStatus.Status()
	}
	return c.JSON(resp)
}

// Predict runs the prediction pipeline for the submitted weather parameters
func (h *Handler) Predict(c *fiber.Ctx) error {
	var in domain.WeatherInput
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	outcome, err := h.predictions.Predict(c.UserContext(), in)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrPredictionFailed):
		return fiber.NewError(fiber.StatusBadGateway, "Failed to get prediction")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to get prediction")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    outcome,
	})
}

// ModelPredict answers the ML service wire contract (snake_case body, bare result)
func (h *Handler) ModelPredict(c *fiber.Ctx) error {
	var req domain.PredictionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(h.model.Predict(req.Input()))
}

// Chart projects a submitted prediction result into chart points
func (h *Handler) Chart(c *fiber.Ctx) error {
	var result domain.PredictionResult
	if err := c.BodyParser(&result); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    service.ProjectChart(&result),
	})
}

// GetHistory returns the most recent predictions
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultHistoryLimit)
	if limit < 1 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	data, err := h.predictions.History(c.UserContext(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch prediction history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// ErrorHandler renders errors as a JSON envelope
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
