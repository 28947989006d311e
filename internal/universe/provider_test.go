package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
)

const sampleCSV = `SYMBOL,NAME OF COMPANY,SERIES,DATE OF LISTING
RELIANCE,Reliance Industries Limited,EQ,29-NOV-1995
TCS,Tata Consultancy Services Limited,EQ,25-AUG-2004
INFY,Infosys Limited,EQ,08-FEB-1995
`

func TestSymbols_DownloadsAndSuffixes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "", nil, time.Hour)
	syms := p.Symbols(context.Background())

	want := []string{"RELIANCE.NS", "TCS.NS", "INFY.NS"}
	if len(syms) != len(want) {
		t.Fatalf("expected %d symbols, got %v", len(want), syms)
	}
	for i, s := range want {
		if syms[i] != s {
			t.Errorf("symbol %d: expected %s, got %s", i, s, syms[i])
		}
	}
}

func TestSymbols_FallbackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	p := NewProvider(srv.URL, "", nil, time.Hour)
	syms := p.Symbols(context.Background())

	if len(syms) == 0 {
		t.Fatal("expected non-empty fallback list")
	}
	if syms[0] != "RELIANCE.NS" {
		t.Errorf("expected fallback list, got %v", syms)
	}
}

func TestSymbols_ServesCacheBeforeDownloading(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	cache, err := NewCache(filepath.Join(t.TempDir(), "universe.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	p := NewProvider(srv.URL, "", cache, time.Hour)

	first := p.Symbols(context.Background())
	second := p.Symbols(context.Background())

	if hits != 1 {
		t.Errorf("expected 1 download, got %d", hits)
	}
	if len(first) != len(second) {
		t.Errorf("cache returned %d symbols, download returned %d", len(second), len(first))
	}
}

func TestCache_StoreLoad(t *testing.T) {
	cache, err := NewCache(filepath.Join(t.TempDir(), "universe.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	if _, ok := cache.Load(time.Hour); ok {
		t.Fatal("expected empty cache to miss")
	}

	stored := []string{"A.NS", "B.NS", "C.NS"}
	if err := cache.Store(stored); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, ok := cache.Load(time.Hour)
	if !ok {
		t.Fatal("expected fresh cache to hit")
	}
	if len(got) != 3 || got[0] != "A.NS" || got[2] != "C.NS" {
		t.Errorf("expected %v, got %v", stored, got)
	}

	if _, ok := cache.Load(-time.Hour); !ok {
		t.Error("expected maxAge <= 0 to accept any age")
	}
}
