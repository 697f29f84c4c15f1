package http

import (
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	app.Get("/", handler.Root)
	app.Get("/health", handler.HealthCheck)

	// ML service wire contract
	app.Post("/predict", handler.ModelPredict)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Post("/predict", handler.Predict)
		api.Get("/predictions", handler.GetHistory)
		api.Post("/chart", handler.Chart)
	}
}
