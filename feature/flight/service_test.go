package flight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"planeage/feature/registry/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubClient struct {
	mu    sync.Mutex
	calls int32
	fn    func(ctx context.Context, flight, date string) (string, error)
}

func (c *stubClient) Registration(ctx context.Context, flight, date string) (string, error) {
	atomic.AddInt32(&c.calls, 1)
	return c.fn(ctx, flight, date)
}

type stubResolver struct {
	fn func(ctx context.Context, tail string) (*models.Aircraft, error)
}

func (r *stubResolver) Lookup(ctx context.Context, tail string) (*models.Aircraft, error) {
	return r.fn(ctx, tail)
}

func testConfig() Config {
	return Config{BaseURL: "http://stub", TimeoutSeconds: 1, CacheSize: 16, CacheTTLMinutes: 5}
}

func TestService_Resolve(t *testing.T) {
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		return "N12345", nil
	}}
	resolver := &stubResolver{fn: func(_ context.Context, tail string) (*models.Aircraft, error) {
		assert.Equal(t, "N12345", tail)
		return &models.Aircraft{Tail: "N12345", Year: "2015"}, nil
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	res, err := svc.Resolve(context.Background(), "ua123", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "UA123", res.Flight)
	assert.Equal(t, "N12345", res.Registration)
	require.NotNil(t, res.Aircraft)
	assert.Equal(t, "2015", res.Aircraft.Year)
}

func TestService_ResolveTailNotInRegistry(t *testing.T) {
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		return "D-ABCD", nil
	}}
	resolver := &stubResolver{fn: func(context.Context, string) (*models.Aircraft, error) {
		return nil, models.ErrNotFound
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	res, err := svc.Resolve(context.Background(), "LH400", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "D-ABCD", res.Registration)
	assert.Nil(t, res.Aircraft, "a registration outside the registry still resolves")
}

func TestService_ResolveRegistryFailurePropagates(t *testing.T) {
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		return "N12345", nil
	}}
	boom := errors.New("disk error")
	resolver := &stubResolver{fn: func(context.Context, string) (*models.Aircraft, error) {
		return nil, boom
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "UA123", "2026-08-30")
	assert.ErrorIs(t, err, boom)
}

func TestService_ResolveTimeoutIsUnavailable(t *testing.T) {
	client := &stubClient{fn: func(ctx context.Context, _, _ string) (string, error) {
		// A well-behaved client returns as soon as its context expires.
		<-ctx.Done()
		return "", ctx.Err()
	}}
	resolver := &stubResolver{fn: func(context.Context, string) (*models.Aircraft, error) {
		t.Fatal("registry leg must not run when the remote leg fails")
		return nil, nil
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := svc.Resolve(ctx, "UA123", "2026-08-30")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestService_NoAssignmentPassesThrough(t *testing.T) {
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		return "", ErrNoAssignment
	}}
	svc := NewService(testConfig(), client, &stubResolver{}, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "UA123", "2026-08-30")
	assert.ErrorIs(t, err, ErrNoAssignment)
}

func TestService_RegistrationCachedPerFlightAndDate(t *testing.T) {
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		return "N12345", nil
	}}
	resolver := &stubResolver{fn: func(context.Context, string) (*models.Aircraft, error) {
		return &models.Aircraft{Tail: "N12345", Year: "2015"}, nil
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	for i := 0; i < 3; i++ {
		_, err := svc.Resolve(context.Background(), "UA123", "2026-08-30")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&client.calls))

	// A different date is a different key.
	_, err := svc.Resolve(context.Background(), "UA123", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&client.calls))
}

func TestService_FailedRemoteCallNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	client := &stubClient{fn: func(context.Context, string, string) (string, error) {
		if fail.Load() {
			return "", ErrUnavailable
		}
		return "N12345", nil
	}}
	resolver := &stubResolver{fn: func(context.Context, string) (*models.Aircraft, error) {
		return &models.Aircraft{Tail: "N12345", Year: "2015"}, nil
	}}
	svc := NewService(testConfig(), client, resolver, zap.NewNop())

	_, err := svc.Resolve(context.Background(), "UA123", "2026-08-30")
	assert.ErrorIs(t, err, ErrUnavailable)

	fail.Store(false)
	res, err := svc.Resolve(context.Background(), "UA123", "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, "N12345", res.Registration)
	assert.Equal(t, int32(2), atomic.LoadInt32(&client.calls))
}
