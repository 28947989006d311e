package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EquityPulse/internal/collector"
	"EquityPulse/internal/config"
	"EquityPulse/internal/notifier"
	"EquityPulse/internal/scanner"
	"EquityPulse/internal/scheduler"
	"EquityPulse/internal/universe"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] EquityPulse starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}
	scanCfg, err := cfg.ScanConfig()
	if err != nil {
		log.Fatalf("[FATAL] scan config: %v", err)
	}

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy, cfg.Fetcher.RequestsPerSecond)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	batch := collector.NewBatchFetcher(fetcher, cfg.Fetcher.MaxInFlight,
		time.Duration(cfg.Fetcher.ChunkTimeoutSecs)*time.Second)

	// Init universe provider with SQLite cache
	var cache *universe.Cache
	if cfg.Universe.CachePath != "" {
		c, err := universe.NewCache(cfg.Universe.CachePath)
		if err != nil {
			log.Printf("[WARN] init universe cache failed, running without: %v", err)
		} else {
			cache = c
			defer c.Close()
		}
	}
	provider := universe.NewProvider(cfg.Universe.ListURL, cfg.Proxy, cache,
		time.Duration(cfg.Universe.CacheTTLHours)*time.Hour)

	// Init engine
	eng := scanner.NewEngine(batch, provider)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, provider, tn, scanCfg)
	if err := sched.RegisterAll(cfg.Schedule.ScanCron, cfg.Schedule.UniverseCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("SCAN_ON_START") == "true" {
		log.Println("[INFO] SCAN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] EquityPulse is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] EquityPulse stopped")
}
