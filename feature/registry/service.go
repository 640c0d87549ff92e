package registry

import (
	"context"
	"strings"

	"planeage/core/cache"
	"planeage/core/gate"
	"planeage/feature/registry/models"

	"go.uber.org/zap"
)

// Service resolves tail registrations against the on-disk registry files.
type Service struct {
	cfg    Config
	gate   *gate.Gate
	loader *cache.Loader[*models.Aircraft]
	logger *zap.Logger
}

// NewService creates a registry lookup service.
func NewService(cfg Config, logger *zap.Logger) *Service {
	c := cache.New[*models.Aircraft](cfg.CacheSize, cfg.CacheTTL())
	return &Service{
		cfg:    cfg,
		gate:   gate.New(cfg.MaxScans),
		loader: cache.NewLoader(c),
		logger: logger,
	}
}

// Lookup resolves a tail registration to its aircraft record.
//
// Results are cached by normalized key (only when they carry a manufacture
// year) and concurrent lookups for the same key share one scan. Returns
// models.ErrNotFound when the registration is absent; any other error is an
// I/O failure.
func (s *Service) Lookup(ctx context.Context, tail string) (*models.Aircraft, error) {
	key := NormalizeKey(tail)
	if key == "" {
		return nil, models.ErrNotFound
	}

	return s.loader.Load(ctx, key, func(ctx context.Context) (*models.Aircraft, bool, error) {
		ac, err := s.resolve(ctx, key)
		if err != nil {
			return nil, false, err
		}
		if ac == nil {
			return nil, false, models.ErrNotFound
		}
		// A record without a year answers nothing useful about aircraft
		// age; hand it back but do not retain it.
		return ac, ac.Year != "", nil
	})
}

// resolve performs the two-table join under a single scan permit.
func (s *Service) resolve(ctx context.Context, key string) (*models.Aircraft, error) {
	if err := s.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.gate.Release()

	rec, err := lookupMaster(s.cfg.MasterPath(), key)
	if err != nil || rec == nil {
		return nil, err
	}

	ac := &models.Aircraft{
		Tail:     rec.Ident,
		Year:     rec.Year,
		Code:     rec.Code,
		KitMfr:   rec.KitMfr,
		KitModel: rec.KitModel,
	}

	// Production types resolve manufacturer/model through the reference
	// file; kit-built types describe themselves inline on the master
	// record. Callers never see the difference.
	mfr, model := rec.KitMfr, rec.KitModel
	if rec.Code != "" {
		ref, err := lookupRef(s.cfg.RefPath(), NormalizeKey(rec.Code))
		if err != nil {
			return nil, err
		}
		if ref != nil {
			mfr, model = ref.Manufacturer, ref.Model
			ac.TypeAircraft = ref.Kind
		} else {
			s.logger.Debug("Reference code missing from type file",
				zap.String("code", rec.Code))
		}
	}

	ac.Manufacturer = mfr
	ac.Model = model
	ac.Type = composeType(mfr, model)
	return ac, nil
}

// composeType builds the display type string "manufacturer model", omitting
// either side when empty.
func composeType(mfr, model string) string {
	return strings.TrimSpace(mfr + " " + model)
}
