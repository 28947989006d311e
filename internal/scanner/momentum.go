package scanner

import (
	"context"
	"math"
	"strings"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/model"
)

// nseSuffix is stripped from symbols for display.
const nseSuffix = ".NS"

// momentumStrategy computes a symbol's current price and percent change from
// its session bars. ok is false when the series cannot support the
// computation and the symbol must be skipped.
type momentumStrategy interface {
	kind() collector.RequestKind
	change(bars []model.Bar) (price, pct float64, ok bool)
}

// openMomentum measures change since the session open: last close against the
// first bar's open.
type openMomentum struct{}

func (openMomentum) kind() collector.RequestKind { return collector.Snapshot }

func (openMomentum) change(bars []model.Bar) (float64, float64, bool) {
	if len(bars) == 0 {
		return 0, 0, false
	}
	open := bars[0].Open
	last := bars[len(bars)-1].Close
	if math.IsNaN(open) || open == 0 || math.IsNaN(last) {
		return 0, 0, false
	}
	return last, (last - open) / open * 100, true
}

// windowMomentum measures change between the latest close and the close
// recorded minutes bars earlier. When history is shorter than the window the
// earliest bar serves as the reference, silently shrinking the effective
// lookback.
type windowMomentum struct {
	minutes int
}

func (windowMomentum) kind() collector.RequestKind { return collector.MinuteWindow }

func (w windowMomentum) change(bars []model.Bar) (float64, float64, bool) {
	closes := make([]float64, 0, len(bars))
	for _, b := range bars {
		if !math.IsNaN(b.Close) {
			closes = append(closes, b.Close)
		}
	}
	if len(closes) < 2 {
		return 0, 0, false
	}
	ref := len(closes) - (w.minutes + 1)
	if ref < 0 {
		ref = 0
	}
	past := closes[ref]
	if past == 0 {
		return 0, 0, false
	}
	last := closes[len(closes)-1]
	return last, (last - past) / past * 100, true
}

// Scan computes per-symbol momentum and returns the symbols whose absolute
// change meets the threshold (inclusive). Results follow the input symbol
// order. Per-symbol data problems skip that symbol; per-chunk fetch failures
// skip that chunk; neither fails the scan.
func (e *Engine) Scan(ctx context.Context, symbols []string, cfg model.ScanConfig) ([]model.MomentumResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, nil
	}

	var strat momentumStrategy = windowMomentum{minutes: cfg.WindowMinutes}
	if cfg.UseOpenPrice {
		strat = openMomentum{}
	}

	series := e.batch.Fetch(ctx, symbols, strat.kind())

	var results []model.MomentumResult
	for _, sym := range symbols {
		price, pct, ok := strat.change(series[sym])
		if !ok {
			continue
		}
		if math.Abs(pct) < cfg.ThresholdPct {
			continue
		}
		results = append(results, model.MomentumResult{
			Symbol:    strings.TrimSuffix(sym, nseSuffix),
			Price:     round2(price),
			ChangePct: round2(pct),
		})
	}
	return results, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
