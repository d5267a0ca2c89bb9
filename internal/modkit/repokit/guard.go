package repokit

import (
	"context"
	"fmt"
	"time"
)

// Pinger is anything that reports readiness
type Pinger interface {
	Ping(context.Context) error
}

// Ping checks p within timeout unless ctx already carries a deadline
// a nil p is an error so missing wiring shows up at startup
func Ping(ctx context.Context, name string, p Pinger, timeout time.Duration) error {
	if p == nil {
		return fmt.Errorf("%s: not configured", name)
	}
	if _, ok := ctx.Deadline(); !ok && timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if err := p.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// MustPing panics if a dependency doesn't answer a Ping within 5s
func MustPing(ctx context.Context, name string, p Pinger) {
	if err := Ping(ctx, name, p, 5*time.Second); err != nil {
		panic(err)
	}
}
