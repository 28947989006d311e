package collector

import (
	"context"

	"EquityPulse/internal/model"
)

// Fetcher defines the interface for fetching market data. One call covers
// many symbols; the returned map holds each symbol's ordered session bars.
type Fetcher interface {
	// FetchDayBars returns the current session's bars at daily resolution.
	FetchDayBars(ctx context.Context, symbols []string) (map[string][]model.Bar, error)
	// FetchMinuteBars returns the current session's bars at minute resolution.
	FetchMinuteBars(ctx context.Context, symbols []string) (map[string][]model.Bar, error)
	Name() string
}
