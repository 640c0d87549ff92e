package refresh

import (
	"context"
	"errors"

	"planeage/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the refresh pipeline.
type Handler struct {
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(pipeline *Pipeline, logger *zap.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger}
}

// RegisterRoutes registers the refresh routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/refresh")
	group.Post("/", h.HandleTrigger)
	group.Get("/status", h.HandleStatus)
}

// HandleTrigger starts a refresh in the background and returns immediately.
func (h *Handler) HandleTrigger(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	if h.pipeline.Status().Running {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "a refresh is already running",
		})
	}

	l.Info("Manual refresh triggered")
	go func() {
		// Detached from the request: a refresh outlives any HTTP timeout.
		if err := h.pipeline.Run(context.Background()); err != nil && !errors.Is(err, ErrAlreadyRunning) {
			h.logger.Error("Manual refresh failed", zap.Error(err))
		}
	}()

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "refresh started"})
}

// HandleStatus reports the pipeline state and dataset age.
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.pipeline.Status())
}
