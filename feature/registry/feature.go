package registry

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the registry lookup service into the application.
type Feature struct {
	service *Service
}

// NewFeature creates the registry feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	return &Feature{service: NewService(cfg, logger)}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "registry" }

// IsEnabled reports whether the feature is active. The registry is the core
// of the service and is always on.
func (f *Feature) IsEnabled() bool { return true }

// Load registers the registry routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}

// Service exposes the lookup service for cross-feature wiring (the flight
// feature resolves registrations through it).
func (f *Feature) Service() *Service { return f.service }
