package server

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/sentimenthub/sentimenthub/internal/controllers"
)

type HTTPServerDependencies struct {
	ReviewController *controllers.ReviewController
	ModelID          string
	Version          string
}

func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName: "sentimenthub",
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "sentimenthub",
			"model":     deps.ModelID,
			"version":   deps.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Post("/analyze", deps.ReviewController.AnalyzeReviews)
	router.Get("/taxonomy", deps.ReviewController.GetTaxonomy)

	return router
}
