package notifier

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"EquityPulse/internal/model"
)

func TestSplitMessage_ShortTextIsSingleMessage(t *testing.T) {
	parts := splitMessage("hello", maxMessageLen)
	if len(parts) != 1 || parts[0] != "hello" {
		t.Fatalf("expected single untouched part, got %v", parts)
	}
}

func TestSplitMessage_CutsOnLineBoundaries(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 400; i++ {
		fmt.Fprintf(&b, "  SYMBOL%03d: ₹123.45 (+5.67%%)\n", i)
	}
	text := b.String()

	parts := splitMessage(text, maxMessageLen)
	if len(parts) < 2 {
		t.Fatalf("expected %d-byte text to split, got %d part(s)", len(text), len(parts))
	}
	for i, p := range parts {
		if len(p) > maxMessageLen {
			t.Errorf("part %d is %d bytes, exceeds limit %d", i, len(p), maxMessageLen)
		}
		for _, line := range strings.Split(strings.TrimRight(p, "\n"), "\n") {
			if !strings.HasSuffix(line, ")") {
				t.Errorf("part %d contains a torn line: %q", i, line)
			}
		}
	}
	if got := strings.Join(parts, "\n"); got != text {
		t.Error("rejoined parts do not match the original text")
	}
}

func TestSplitMessage_HardCutWithoutNewlines(t *testing.T) {
	text := strings.Repeat("a", 9000)
	parts := splitMessage(text, maxMessageLen)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts for 9000 bytes, got %d", len(parts))
	}
	total := 0
	for i, p := range parts {
		if len(p) > maxMessageLen {
			t.Errorf("part %d is %d bytes, exceeds limit", i, len(p))
		}
		total += len(p)
	}
	if total != len(text) {
		t.Errorf("split lost bytes: %d of %d remain", total, len(text))
	}
}

func TestSplitMessage_FullUniverseReport(t *testing.T) {
	results := make([]model.MomentumResult, 0, 500)
	for i := 0; i < 500; i++ {
		results = append(results, model.MomentumResult{
			Symbol:    fmt.Sprintf("STOCK%03d", i),
			Price:     150 + float64(i%50),
			ChangePct: 6.1,
		})
	}
	cfg := model.ScanConfig{
		Bands:         []model.PriceBand{model.Band100to200},
		ThresholdPct:  5,
		WindowMinutes: 10,
	}
	report := FormatScanReport(results, cfg, true, 2000)
	if len(report) <= maxMessageLen {
		t.Fatalf("report is only %d bytes, does not exercise splitting", len(report))
	}

	parts := splitMessage(report, maxMessageLen)
	if len(parts) < 2 {
		t.Fatalf("expected the report to split, got %d part(s)", len(parts))
	}
	joined := strings.Join(parts, "\n")
	for i := 0; i < 500; i++ {
		sym := fmt.Sprintf("STOCK%03d", i)
		if !strings.Contains(joined, sym) {
			t.Fatalf("symbol %s missing after split", sym)
		}
	}
	for i, p := range parts {
		if len(p) > maxMessageLen {
			t.Errorf("part %d is %d bytes, exceeds limit", i, len(p))
		}
	}
}

func decodeUpdates(t *testing.T, raw string) []telegramUpdate {
	t.Helper()
	var updates []telegramUpdate
	if err := json.Unmarshal([]byte(raw), &updates); err != nil {
		t.Fatalf("decode updates: %v", err)
	}
	return updates
}

func TestDispatchUpdates_IgnoresForeignChat(t *testing.T) {
	tn := &TelegramNotifier{ChatID: "42"}
	updates := decodeUpdates(t, `[
		{"update_id": 10, "message": {"text": "/scan", "chat": {"id": 99}}},
		{"update_id": 11, "message": {"text": "/status", "chat": {"id": 42}}},
		{"update_id": 12, "message": {"text": ""}}
	]`)

	var handled []string
	offset := tn.dispatchUpdates(updates, 0, func(cmd string) string {
		handled = append(handled, cmd)
		return ""
	})

	if len(handled) != 1 || handled[0] != "/status" {
		t.Errorf("expected only the configured chat's command, got %v", handled)
	}
	if offset != 13 {
		t.Errorf("expected offset to advance past all updates, got %d", offset)
	}
}
