package model

import "time"

// Bar represents a single candlestick row. Missing fields are NaN rather than
// zero, so a genuine zero price stays distinguishable from absent data.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
