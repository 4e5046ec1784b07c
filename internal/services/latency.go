package services

import (
	"context"
	"time"
)

// Latency is the artificial delay applied before each kind of operation.
type Latency struct {
	List   time.Duration // filtered lists and stats
	Detail time.Duration // single products, rails, reviews
	Lookup time.Duration // stock and specification checks
}

// DefaultLatency mirrors the timings of the storefront's mock API.
var DefaultLatency = LatencyFrom(300 * time.Millisecond)

// NoLatency disables the artificial delay.
var NoLatency = Latency{}

// LatencyFrom derives the detail and lookup delays from the list delay.
func LatencyFrom(list time.Duration) Latency {
	return Latency{
		List:   list,
		Detail: list * 2 / 3,
		Lookup: list / 3,
	}
}

// wait blocks for d or until ctx is done, whichever comes first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
