package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"EquityPulse/internal/model"
	"EquityPulse/internal/notifier"
	"EquityPulse/internal/scanner"
	"EquityPulse/internal/universe"

	"github.com/robfig/cron/v3"
)

// Scheduler runs periodic scans and serves Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *scanner.Engine
	Universe *universe.Provider
	Notifier *notifier.TelegramNotifier
	Defaults model.ScanConfig
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler. defaults seeds scheduled scans; the
// engine itself stays stateless.
func NewScheduler(ctx context.Context, eng *scanner.Engine, prov *universe.Provider, tn *notifier.TelegramNotifier, defaults model.ScanConfig) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Universe: prov,
		Notifier: tn,
		Defaults: defaults,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scan and universe-refresh tasks.
func (s *Scheduler) RegisterAll(scanCron, universeCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(universeCron, s.refreshUniverse); err != nil {
		return fmt.Errorf("register universe refresh: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / SCAN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Println("[INFO] running scan")
	start := time.Now()

	symbols := s.Engine.Universe(s.Ctx)
	log.Printf("[INFO] universe: %d symbols", len(symbols))

	candidates := s.Engine.FilterByBands(s.Ctx, symbols, s.Defaults.Bands)
	if len(candidates) == 0 {
		log.Printf("[INFO] no symbols in selected bands")
		return
	}
	log.Printf("[INFO] %d symbols in selected bands", len(candidates))

	results, err := s.Engine.Scan(s.Ctx, candidates, s.Defaults)
	if err != nil {
		log.Printf("[ERROR] scan: %v", err)
		s.trySend(fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}
	log.Printf("[INFO] scan finished: %d movers of %d candidates in %v",
		len(results), len(candidates), time.Since(start).Round(time.Millisecond))

	report := notifier.FormatScanReport(results, s.Defaults, s.Engine.IsSessionOpen(), len(candidates))
	s.trySend(report)
}

func (s *Scheduler) refreshUniverse() {
	log.Println("[INFO] refreshing symbol universe")
	n, err := s.Universe.Refresh(s.Ctx)
	if err != nil {
		log.Printf("[WARN] universe refresh failed: %v", err)
		return
	}
	log.Printf("[INFO] universe refreshed: %d symbols", n)
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/scan":
		s.scanTask()
		return ""
	case "/status":
		return notifier.FormatStatus(s.Engine.IsSessionOpen(), len(s.Engine.Universe(s.Ctx)), s.Defaults)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
