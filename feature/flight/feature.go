package flight

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires flight resolution into the application.
type Feature struct {
	cfg     Config
	service *Service
}

// NewFeature creates the flight feature. The resolver is the registry
// feature's lookup service.
func NewFeature(cfg Config, resolver AircraftResolver, logger *zap.Logger) *Feature {
	return &Feature{
		cfg:     cfg,
		service: NewService(cfg, NewClient(cfg), resolver, logger),
	}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "flight" }

// IsEnabled reports whether the feature is active. Without a flight-data API
// endpoint there is nothing to resolve.
func (f *Feature) IsEnabled() bool { return f.cfg.BaseURL != "" }

// Load registers the flight routes.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.service).RegisterRoutes(app)
	return nil
}
