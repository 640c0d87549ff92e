package registry

import (
	"errors"

	"planeage/core/logger"
	"planeage/feature/registry/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for registry lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the registry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/registry")
	group.Get("/:tail", h.HandleLookup)
}

// HandleLookup resolves a tail registration to its registry record.
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	tail := c.Params("tail")

	ac, err := h.service.Lookup(c.Context(), tail)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "aircraft not found",
			})
		}
		// Never leak paths or internals to the client.
		l.Error("Registry lookup failed", zap.String("tail", tail), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "registry lookup failed",
		})
	}
	return c.JSON(ac)
}
