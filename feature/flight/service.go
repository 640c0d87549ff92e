package flight

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planeage/core/cache"
	"planeage/feature/registry/models"

	"go.uber.org/zap"
)

// AircraftResolver resolves a tail registration to its registry record.
// Implemented by the registry feature's service.
type AircraftResolver interface {
	Lookup(ctx context.Context, tail string) (*models.Aircraft, error)
}

// Resolution is the combined outcome of both lookup legs. Aircraft is nil
// when the registration exists but the tail is not in the local registry.
type Resolution struct {
	Flight       string           `json:"flight"`
	Date         string           `json:"date"`
	Registration string           `json:"registration"`
	Aircraft     *models.Aircraft `json:"aircraft,omitempty"`
}

// Service orchestrates flight-to-aircraft resolution.
type Service struct {
	cfg      Config
	client   RegistrationClient
	resolver AircraftResolver
	loader   *cache.Loader[string]
	logger   *zap.Logger
}

// NewService creates a resolution service.
func NewService(cfg Config, client RegistrationClient, resolver AircraftResolver, logger *zap.Logger) *Service {
	c := cache.New[string](cfg.CacheSize, cfg.CacheTTL())
	return &Service{
		cfg:      cfg,
		client:   client,
		resolver: resolver,
		loader:   cache.NewLoader(c),
		logger:   logger,
	}
}

// Resolve turns a flight number and date into the aircraft flying it.
//
// The remote leg is cached by flight+date and coalesced, with a bounded
// timeout; on timeout the outcome is ErrUnavailable, never a detached call.
// Only successful non-empty registrations are cached, so a flight that gets
// its aircraft assigned later is not pinned to a stale miss.
func (s *Service) Resolve(ctx context.Context, flightNo, date string) (*Resolution, error) {
	flightNo = strings.ToUpper(strings.TrimSpace(flightNo))
	key := flightNo + "|" + date

	reg, err := s.loader.Load(ctx, key, func(ctx context.Context) (string, bool, error) {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout())
		defer cancel()

		reg, err := s.client.Registration(ctx, flightNo, date)
		if err != nil {
			if !errors.Is(err, ErrNoAssignment) && !errors.Is(err, ErrUnavailable) {
				err = fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return "", false, err
		}
		return reg, reg != "", nil
	})
	if err != nil {
		return nil, err
	}

	res := &Resolution{Flight: flightNo, Date: date, Registration: reg}

	ac, err := s.resolver.Lookup(ctx, reg)
	switch {
	case err == nil:
		res.Aircraft = ac
	case errors.Is(err, models.ErrNotFound):
		// Registration known, tail not in the local registry. Still a
		// resolution; the caller sees the registration without specs.
		s.logger.Debug("Registration not in registry",
			zap.String("registration", reg))
	default:
		return nil, err
	}
	return res, nil
}
