package refresh

import (
	"context"

	"planeage/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the refresh pipeline, its scheduler, and the optional mirror
// into the application.
type Feature struct {
	cfg      Config
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewFeature creates the refresh feature targeting the given registry files.
// store may be nil when mirroring is disabled.
func NewFeature(cfg Config, masterPath, refPath string, store storage.Client, bucket string, logger *zap.Logger) *Feature {
	var mirror *Mirror
	if cfg.Mirror && store != nil {
		mirror = NewMirror(store, bucket, cfg.MirrorKeep, logger)
	}
	return &Feature{
		cfg:      cfg,
		pipeline: NewPipeline(cfg, masterPath, refPath, mirror, logger),
		logger:   logger,
	}
}

// Name returns the feature name.
func (f *Feature) Name() string { return "refresh" }

// IsEnabled reports whether the feature is active.
func (f *Feature) IsEnabled() bool { return f.cfg.Enabled }

// Load registers the refresh routes and starts the staleness scheduler.
func (f *Feature) Load(app fiber.Router) error {
	NewHandler(f.pipeline, f.logger).RegisterRoutes(app)
	NewScheduler(f.pipeline, f.cfg, f.logger).Start(context.Background())
	return nil
}

// Pipeline exposes the pipeline for one-shot CLI runs.
func (f *Feature) Pipeline() *Pipeline { return f.pipeline }
