// Package scanner implements the price-band filter and the momentum scan.
package scanner

import (
	"context"
	"time"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/marketclock"
)

// UniverseProvider supplies the full ticker list. Implementations never fail:
// they fall back to a static list instead.
type UniverseProvider interface {
	Symbols(ctx context.Context) []string
}

// Engine is the scanning facade handed to the presentation layer. It holds no
// state across scans; each invocation works entirely from its arguments.
type Engine struct {
	batch    *collector.BatchFetcher
	universe UniverseProvider
	now      func() time.Time
}

// NewEngine creates an Engine over the given batch fetcher and universe.
func NewEngine(batch *collector.BatchFetcher, universe UniverseProvider) *Engine {
	return &Engine{batch: batch, universe: universe, now: time.Now}
}

// IsSessionOpen reports whether the NSE session is open right now. Scans run
// either way; this only annotates status.
func (e *Engine) IsSessionOpen() bool {
	return marketclock.IsOpen(e.now())
}

// Universe returns the full symbol list.
func (e *Engine) Universe(ctx context.Context) []string {
	return e.universe.Symbols(ctx)
}
