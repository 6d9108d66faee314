package render

import (
	"context"

	"golang.org/x/time/rate"
)

// Gate bounds concurrent browser sessions and optionally rate-limits
// session launches. The original service launched one independent session
// per request with no global limit; the gate makes that bound explicit and
// configurable, and a zero max restores the unbounded behavior.
type Gate struct {
	sem     chan struct{}
	limiter *rate.Limiter
}

// NewGate creates a gate allowing up to maxSessions concurrent sessions
// (0 = unbounded) and launchRate session launches per second (0 = no
// launch rate limit).
func NewGate(maxSessions int, launchRate float64) *Gate {
	g := &Gate{}
	if maxSessions > 0 {
		g.sem = make(chan struct{}, maxSessions)
	}
	if launchRate > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(launchRate), 1)
	}
	return g
}

// Acquire blocks until a session slot is available and the launch rate
// allows another session, or until ctx is done. Every successful Acquire
// must be paired with Release.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	if g.sem == nil {
		return nil
	}

	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a session slot acquired with Acquire.
func (g *Gate) Release() {
	if g.sem == nil {
		return
	}
	select {
	case <-g.sem:
	default:
	}
}
