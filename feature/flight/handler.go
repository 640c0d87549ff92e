package flight

import (
	"errors"
	"strings"
	"time"

	"planeage/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for flight resolution.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the flight routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/flight")
	group.Get("/:number", h.HandleResolve)
}

// HandleResolve resolves a flight number (and optional date, default today
// UTC) to the aircraft flying it.
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	number := strings.TrimSpace(c.Params("number"))
	if number == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "flight number is required",
		})
	}
	date := c.Query("date")
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	res, err := h.service.Resolve(c.Context(), number, date)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAssignment):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "no aircraft has been assigned to this flight yet",
			})
		case errors.Is(err, ErrUnavailable):
			l.Warn("Flight data unavailable", zap.String("flight", number), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "flight data is currently unavailable",
			})
		default:
			l.Error("Flight resolution failed", zap.String("flight", number), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "flight resolution failed",
			})
		}
	}
	return c.JSON(res)
}
