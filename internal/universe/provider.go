// Package universe supplies the full NSE ticker list.
package universe

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

// DefaultListURL is the NSE equity master list (EQUITY_L.csv).
const DefaultListURL = "https://archives.nseindia.com/content/equities/EQUITY_L.csv"

// fallbackSymbols keeps the scanner usable when both the cache and the NSE
// archive are unavailable.
var fallbackSymbols = []string{
	"RELIANCE.NS", "TCS.NS", "HDFCBANK.NS", "INFY.NS", "ICICIBANK.NS",
	"HINDUNILVR.NS", "SBIN.NS", "BHARTIARTL.NS", "ITC.NS", "KOTAKBANK.NS",
}

// Provider downloads the NSE symbol list and serves it with a cache in front.
// Symbols never fails and never returns an empty list.
type Provider struct {
	URL    string
	Client *http.Client
	Cache  *Cache // optional
	TTL    time.Duration
}

// NewProvider creates a Provider. cache may be nil; ttl bounds how long a
// cached list is served before re-downloading.
func NewProvider(listURL, proxyURL string, cache *Cache, ttl time.Duration) *Provider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if listURL == "" {
		listURL = DefaultListURL
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Provider{
		URL: listURL,
		Client: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		Cache: cache,
		TTL:   ttl,
	}
}

// Symbols returns the full ticker list, each suffixed with the NSE exchange
// qualifier. Order of preference: fresh cache, fresh download, stale cache,
// static fallback.
func (p *Provider) Symbols(ctx context.Context) []string {
	if p.Cache != nil {
		if syms, ok := p.Cache.Load(p.TTL); ok {
			return syms
		}
	}

	syms, err := p.download(ctx)
	if err != nil {
		log.Printf("[WARN] universe download failed: %v", err)
		if p.Cache != nil {
			if syms, ok := p.Cache.Load(0); ok {
				log.Printf("[INFO] serving stale universe cache (%d symbols)", len(syms))
				return syms
			}
		}
		log.Printf("[INFO] using static fallback list (%d symbols)", len(fallbackSymbols))
		return append([]string(nil), fallbackSymbols...)
	}

	if p.Cache != nil {
		if err := p.Cache.Store(syms); err != nil {
			log.Printf("[WARN] store universe cache: %v", err)
		}
	}
	return syms
}

// Refresh forces a download regardless of cache freshness and returns the
// number of symbols fetched.
func (p *Provider) Refresh(ctx context.Context) (int, error) {
	syms, err := p.download(ctx)
	if err != nil {
		return 0, err
	}
	if p.Cache != nil {
		if err := p.Cache.Store(syms); err != nil {
			log.Printf("[WARN] store universe cache: %v", err)
		}
	}
	return len(syms), nil
}

func (p *Provider) download(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.URL, nil)
	if err != nil {
		return nil, err
	}
	// The NSE archive rejects requests without a browser User-Agent.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64)")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch symbol list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch symbol list: status %d", resp.StatusCode)
	}

	r := csv.NewReader(resp.Body)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := -1
	for i, name := range header {
		if name == "SYMBOL" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.New("csv: no SYMBOL column")
	}

	var symbols []string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
		if col >= len(rec) || rec[col] == "" {
			continue
		}
		symbols = append(symbols, rec[col]+".NS")
	}
	if len(symbols) == 0 {
		return nil, errors.New("csv: symbol column empty")
	}
	return symbols, nil
}
