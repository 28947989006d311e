package model

import "fmt"

// ScanConfig is the immutable configuration for a single scan invocation.
// The engine holds no state between scans; everything it needs arrives here.
type ScanConfig struct {
	Bands         []PriceBand
	ThresholdPct  float64
	WindowMinutes int
	UseOpenPrice  bool
}

// Validate checks the numeric ranges the engine accepts.
func (c ScanConfig) Validate() error {
	if c.ThresholdPct <= 0 || c.ThresholdPct > 20 {
		return fmt.Errorf("threshold %.2f%% out of range (0, 20]", c.ThresholdPct)
	}
	if c.WindowMinutes < 1 || c.WindowMinutes > 375 {
		return fmt.Errorf("window %d minutes out of range [1, 375]", c.WindowMinutes)
	}
	return nil
}

// MomentumResult is one symbol that cleared the momentum threshold.
// Symbol carries no exchange suffix; Price and ChangePct are rounded to
// 2 decimal places.
type MomentumResult struct {
	Symbol    string
	Price     float64
	ChangePct float64
}
