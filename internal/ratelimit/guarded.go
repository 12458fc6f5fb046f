package ratelimit

import (
	"context"
	"time"

	"github.com/noah-isme/cart-transform/internal/resilience"
)

// Guarded routes Allow calls through a circuit breaker so a failing store is skipped
// quickly instead of adding a timeout to every request.
type Guarded struct {
	Next    Allower
	Breaker *resilience.Breaker
}

// Allow implements Allower. A refused call returns resilience.ErrOpenCircuit.
func (g Guarded) Allow(ctx context.Context, key string, window time.Duration, limit int) (bool, int, time.Time, error) {
	if g.Breaker == nil {
		return g.Next.Allow(ctx, key, window, limit)
	}
	var (
		allowed   bool
		remaining int
		reset     time.Time
	)
	err := g.Breaker.Do(ctx, func(ctx context.Context) error {
		var err error
		allowed, remaining, reset, err = g.Next.Allow(ctx, key, window, limit)
		return err
	})
	return allowed, remaining, reset, err
}
