package gate

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate limits concurrent holders to a fixed permit count. Acquire blocks in
// FIFO order once all permits are taken.
type Gate struct {
	sem *semaphore.Weighted
}

// New creates a Gate with n permits. Values below 1 are clamped to 1.
func New(n int) *Gate {
	if n < 1 {
		n = 1
	}
	return &Gate{sem: semaphore.NewWeighted(int64(n))}
}

// Acquire takes a permit, blocking until one is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

// Release returns a permit taken by Acquire.
func (g *Gate) Release() {
	g.sem.Release(1)
}
