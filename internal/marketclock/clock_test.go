package marketclock

import (
	"testing"
	"time"
)

func TestIsOpen_SessionBoundaries(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"monday mid-session", time.Date(2026, 3, 2, 10, 0, 0, 0, IST), true},
		{"saturday", time.Date(2026, 3, 7, 10, 0, 0, 0, IST), false},
		{"sunday", time.Date(2026, 3, 8, 10, 0, 0, 0, IST), false},
		{"monday after close", time.Date(2026, 3, 2, 16, 0, 0, 0, IST), false},
		{"monday before open", time.Date(2026, 3, 2, 9, 14, 59, 0, IST), false},
		{"open boundary inclusive", time.Date(2026, 3, 2, 9, 15, 0, 0, IST), true},
		{"close boundary inclusive", time.Date(2026, 3, 2, 15, 30, 0, 0, IST), true},
		{"just past close", time.Date(2026, 3, 2, 15, 30, 1, 0, IST), false},
		{"friday mid-session", time.Date(2026, 3, 6, 13, 45, 0, 0, IST), true},
	}
	for _, tt := range tests {
		if got := IsOpen(tt.t); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestIsOpen_ConvertsToIST(t *testing.T) {
	// 04:30 UTC is 10:00 IST, inside the session.
	utc := time.Date(2026, 3, 2, 4, 30, 0, 0, time.UTC)
	if !IsOpen(utc) {
		t.Error("expected 04:30 UTC Monday to be inside the IST session")
	}
	// 11:00 UTC is 16:30 IST, after close.
	utc = time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC)
	if IsOpen(utc) {
		t.Error("expected 11:00 UTC Monday to be after the IST close")
	}
}
