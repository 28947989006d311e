package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"EquityPulse/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Universe struct {
		ListURL       string `yaml:"list_url"`
		CachePath     string `yaml:"cache_path"`
		CacheTTLHours int    `yaml:"cache_ttl_hours"`
	} `yaml:"universe"`
	Fetcher struct {
		MaxInFlight       int `yaml:"max_in_flight"`
		ChunkTimeoutSecs  int `yaml:"chunk_timeout_secs"`
		RequestsPerSecond int `yaml:"requests_per_second"`
	} `yaml:"fetcher"`
	Scan struct {
		Bands         []string `yaml:"bands"`
		ThresholdPct  float64  `yaml:"threshold_pct"`
		WindowMinutes int      `yaml:"window_minutes"`
		UseOpenPrice  bool     `yaml:"use_open_price"`
	} `yaml:"scan"`
	Schedule struct {
		ScanCron     string `yaml:"scan_cron"`
		UniverseCron string `yaml:"universe_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("NSE_LIST_URL"); v != "" {
		cfg.Universe.ListURL = v
	}
	if v := os.Getenv("UNIVERSE_CACHE_PATH"); v != "" {
		cfg.Universe.CachePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_THRESHOLD_PCT"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.ThresholdPct = t
		}
	}
	if v := os.Getenv("SCAN_WINDOW_MINUTES"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			cfg.Scan.WindowMinutes = w
		}
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}

	// Defaults
	if cfg.Universe.CachePath == "" {
		cfg.Universe.CachePath = "data/equitypulse.db"
	}
	if cfg.Universe.CacheTTLHours == 0 {
		cfg.Universe.CacheTTLHours = 24
	}
	if cfg.Fetcher.MaxInFlight == 0 {
		cfg.Fetcher.MaxInFlight = 4
	}
	if cfg.Fetcher.ChunkTimeoutSecs == 0 {
		cfg.Fetcher.ChunkTimeoutSecs = 30
	}
	if cfg.Fetcher.RequestsPerSecond == 0 {
		cfg.Fetcher.RequestsPerSecond = 4
	}
	if len(cfg.Scan.Bands) == 0 {
		cfg.Scan.Bands = []string{"100-200", "200-300", "300-400"}
	}
	if cfg.Scan.ThresholdPct == 0 {
		cfg.Scan.ThresholdPct = 5.0
	}
	if cfg.Scan.WindowMinutes == 0 {
		cfg.Scan.WindowMinutes = 10
	}
	if cfg.Schedule.ScanCron == "" {
		// Every 10 minutes on weekdays, in the host's local time. Scans
		// outside the NSE session report the last session's data.
		cfg.Schedule.ScanCron = "0 */10 * * * 1-5"
	}
	if cfg.Schedule.UniverseCron == "" {
		cfg.Schedule.UniverseCron = "0 30 8 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if _, err := c.ScanConfig(); err != nil {
		return fmt.Errorf("scan: %w", err)
	}
	return nil
}

// ScanConfig converts the scan section into the engine's per-invocation
// configuration.
func (c *Config) ScanConfig() (model.ScanConfig, error) {
	bands := make([]model.PriceBand, 0, len(c.Scan.Bands))
	for _, label := range c.Scan.Bands {
		band, err := model.ParseBand(label)
		if err != nil {
			return model.ScanConfig{}, err
		}
		bands = append(bands, band)
	}
	sc := model.ScanConfig{
		Bands:         bands,
		ThresholdPct:  c.Scan.ThresholdPct,
		WindowMinutes: c.Scan.WindowMinutes,
		UseOpenPrice:  c.Scan.UseOpenPrice,
	}
	if err := sc.Validate(); err != nil {
		return model.ScanConfig{}, err
	}
	return sc, nil
}
