package collector

import (
	"context"
	"errors"
	"sync/atomic"

	"EquityPulse/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	// Bars is returned for any symbol present, at either resolution.
	Bars map[string][]model.Bar
	// FailFor makes any call whose symbol set contains one of these symbols
	// return an error, simulating a failed batch request.
	FailFor map[string]bool
	// FailFirst makes the first N calls fail regardless of symbols.
	FailFirst int32

	calls int32
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls reports how many fetch calls were issued.
func (m *MockFetcher) Calls() int {
	return int(atomic.LoadInt32(&m.calls))
}

func (m *MockFetcher) fetch(symbols []string) (map[string][]model.Bar, error) {
	n := atomic.AddInt32(&m.calls, 1)
	if n <= atomic.LoadInt32(&m.FailFirst) {
		return nil, errors.New("mock: transient failure")
	}
	out := make(map[string][]model.Bar)
	for _, sym := range symbols {
		if m.FailFor[sym] {
			return nil, errors.New("mock: batch failure")
		}
		if bars, ok := m.Bars[sym]; ok {
			out[sym] = bars
		}
	}
	return out, nil
}

func (m *MockFetcher) FetchDayBars(_ context.Context, symbols []string) (map[string][]model.Bar, error) {
	return m.fetch(symbols)
}

func (m *MockFetcher) FetchMinuteBars(_ context.Context, symbols []string) (map[string][]model.Bar, error) {
	return m.fetch(symbols)
}
