package scheduler

import (
	"context"
	"strings"
	"testing"
	"time"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/model"
	"EquityPulse/internal/notifier"
	"EquityPulse/internal/scanner"
)

type staticUniverse []string

func (s staticUniverse) Symbols(_ context.Context) []string { return s }

func newTestScheduler() *Scheduler {
	batch := collector.NewBatchFetcher(&collector.MockFetcher{}, 2, time.Second)
	eng := scanner.NewEngine(batch, staticUniverse{"AAA.NS", "BBB.NS", "CCC.NS"})
	defaults := model.ScanConfig{
		Bands:         []model.PriceBand{model.Band100to200, model.Band200to300},
		ThresholdPct:  5,
		WindowMinutes: 10,
	}
	return NewScheduler(context.Background(), eng, nil, nil, defaults)
}

func TestHandleCommand_UnknownRepliesWithHelp(t *testing.T) {
	s := newTestScheduler()
	for _, cmd := range []string{"/bogus", "scan", "hello there", ""} {
		if got := s.HandleCommand(cmd); got != notifier.FormatHelp() {
			t.Errorf("command %q: expected help text, got %q", cmd, got)
		}
	}
}

func TestHandleCommand_Status(t *testing.T) {
	s := newTestScheduler()
	status := s.HandleCommand("/status")
	if !strings.Contains(status, "Scanner Status") {
		t.Fatalf("expected status header, got:\n%s", status)
	}
	if !strings.Contains(status, "Universe: 3 symbols") {
		t.Errorf("expected universe size in status, got:\n%s", status)
	}
	if !strings.Contains(status, "100-200, 200-300") {
		t.Errorf("expected configured bands in status, got:\n%s", status)
	}
	if !strings.Contains(status, "10 minute window") {
		t.Errorf("expected momentum basis in status, got:\n%s", status)
	}
}

func TestHandleCommand_ScanRepliesDirectly(t *testing.T) {
	// /scan reports through the notifier, not the polling reply, so the
	// handler must return an empty string.
	s := newTestScheduler()
	if got := s.HandleCommand("/scan"); got != "" {
		t.Errorf("expected empty reply for /scan, got %q", got)
	}
}
