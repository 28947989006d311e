package notifier

import (
	"fmt"
	"strings"
	"time"

	"EquityPulse/internal/marketclock"
	"EquityPulse/internal/model"
)

// FormatScanReport formats scan results into a Telegram message, grouped by
// price band the way the movers are grouped on screen.
func FormatScanReport(results []model.MomentumResult, cfg model.ScanConfig, sessionOpen bool, scanned int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 <b>EquityPulse Scan</b> | %s\n", time.Now().In(marketclock.IST).Format("2006-01-02 15:04")))
	if sessionOpen {
		b.WriteString("☀️ Market OPEN\n\n")
	} else {
		b.WriteString("🌙 Market CLOSED (NSE: 9:15-15:30 IST) — last session data\n\n")
	}

	basis := fmt.Sprintf("%dm window", cfg.WindowMinutes)
	if cfg.UseOpenPrice {
		basis = "since open"
	}
	b.WriteString(fmt.Sprintf("Threshold ≥ %.1f%% (%s) | %d symbols scanned\n", cfg.ThresholdPct, basis, scanned))

	if len(results) == 0 {
		b.WriteString("\nNo movers in the selected price bands.")
		return b.String()
	}

	for _, band := range model.AllBands {
		var lines []string
		for _, r := range results {
			if model.BandFor(r.Price) == band {
				lines = append(lines, fmt.Sprintf("  %s: ₹%.2f (%+.2f%%)", r.Symbol, r.Price, r.ChangePct))
			}
		}
		if len(lines) == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n<b>₹%s</b>\n", band))
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatStatus formats the current scanner status for display.
func FormatStatus(sessionOpen bool, universeSize int, cfg model.ScanConfig) string {
	var b strings.Builder
	b.WriteString("📦 <b>Scanner Status</b>\n\n")
	if sessionOpen {
		b.WriteString("Session: OPEN ☀️\n")
	} else {
		b.WriteString("Session: CLOSED 🌙\n")
	}
	b.WriteString(fmt.Sprintf("Universe: %d symbols\n", universeSize))

	labels := make([]string, 0, len(cfg.Bands))
	for _, band := range cfg.Bands {
		labels = append(labels, band.String())
	}
	b.WriteString(fmt.Sprintf("Bands: %s\n", strings.Join(labels, ", ")))
	b.WriteString(fmt.Sprintf("Threshold: %.1f%%\n", cfg.ThresholdPct))
	if cfg.UseOpenPrice {
		b.WriteString("Momentum basis: since session open\n")
	} else {
		b.WriteString(fmt.Sprintf("Momentum basis: %d minute window\n", cfg.WindowMinutes))
	}
	return b.String()
}

// FormatHelp lists the available commands.
func FormatHelp() string {
	return "Available commands:\n• /scan — run a scan now\n• /status — show scanner status\n• /help — this message"
}
