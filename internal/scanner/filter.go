package scanner

import (
	"context"
	"math"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/model"
)

// FilterByBands returns the subset of symbols whose last traded price falls
// into one of the selected bands. Symbols with missing prices are silently
// dropped. Empty symbols or bands short-circuit without contacting the data
// source.
func (e *Engine) FilterByBands(ctx context.Context, symbols []string, bands []model.PriceBand) []string {
	if len(symbols) == 0 || len(bands) == 0 {
		return nil
	}
	selected := make(map[model.PriceBand]bool, len(bands))
	for _, b := range bands {
		selected[b] = true
	}

	series := e.batch.Fetch(ctx, symbols, collector.Snapshot)

	var kept []string
	for _, sym := range symbols {
		bars := series[sym]
		if len(bars) == 0 {
			continue
		}
		price := bars[len(bars)-1].Close
		if math.IsNaN(price) || price < 0 {
			continue
		}
		if selected[model.BandFor(price)] {
			kept = append(kept, sym)
		}
	}
	return kept
}
