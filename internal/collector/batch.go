package collector

import (
	"context"
	"log"
	"sync"
	"time"

	"EquityPulse/internal/model"
)

// Chunk sizes per request kind. Minute-resolution history carries a much
// larger per-symbol payload, so it travels in smaller chunks.
const (
	SnapshotChunkSize = 200
	MinuteChunkSize   = 100
)

// RequestKind selects the resolution of a batched fetch.
type RequestKind int

const (
	// Snapshot fetches one trading day at daily resolution.
	Snapshot RequestKind = iota
	// MinuteWindow fetches one trading day at minute resolution.
	MinuteWindow
)

// BatchFetcher splits a symbol set into fixed-size chunks, fetches the chunks
// concurrently on a bounded worker pool, and isolates per-chunk failures: a
// failed chunk is logged and dropped, never fatal to the overall fetch.
type BatchFetcher struct {
	fetcher      Fetcher
	maxInFlight  int
	chunkTimeout time.Duration
	retryDelay   time.Duration
}

// NewBatchFetcher creates a BatchFetcher. maxInFlight bounds concurrent chunk
// requests; chunkTimeout applies per request attempt.
func NewBatchFetcher(fetcher Fetcher, maxInFlight int, chunkTimeout time.Duration) *BatchFetcher {
	if maxInFlight <= 0 {
		maxInFlight = 4
	}
	if chunkTimeout <= 0 {
		chunkTimeout = 30 * time.Second
	}
	return &BatchFetcher{
		fetcher:      fetcher,
		maxInFlight:  maxInFlight,
		chunkTimeout: chunkTimeout,
		retryDelay:   2 * time.Second,
	}
}

// chunkResult is the outcome of one chunk request: bars on success, err on a
// dropped chunk. The aggregator inspects it explicitly.
type chunkResult struct {
	index int
	bars  map[string][]model.Bar
	err   error
}

// Fetch retrieves bars for all symbols. The result maps each symbol to its
// ordered session bars; symbols with no data are simply absent. On context
// cancellation, chunks completed so far are still returned.
func (b *BatchFetcher) Fetch(ctx context.Context, symbols []string, kind RequestKind) map[string][]model.Bar {
	out := make(map[string][]model.Bar, len(symbols))
	if len(symbols) == 0 {
		return out
	}

	chunkSize := SnapshotChunkSize
	if kind == MinuteWindow {
		chunkSize = MinuteChunkSize
	}
	chunks := chunkSymbols(symbols, chunkSize)

	results := make(chan chunkResult)
	var wg sync.WaitGroup
	sem := make(chan struct{}, b.maxInFlight)

	for i, c := range chunks {
		wg.Add(1)
		go func(index int, syms []string) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results <- chunkResult{index: index, err: ctx.Err()}
				return
			}
			bars, err := b.fetchChunk(ctx, syms, kind)
			results <- chunkResult{index: index, bars: bars, err: err}
		}(i, c)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Single aggregation point: completion order does not matter for the
	// per-symbol map, but only this loop writes to it.
	for res := range results {
		if res.err != nil {
			log.Printf("[WARN] chunk %d/%d dropped: %v", res.index+1, len(chunks), res.err)
			continue
		}
		for sym, bars := range res.bars {
			if len(bars) > 0 {
				out[sym] = bars
			}
		}
	}
	return out
}

// fetchChunk issues one request under its own timeout, retrying once with a
// short backoff before the chunk is written off.
func (b *BatchFetcher) fetchChunk(ctx context.Context, symbols []string, kind RequestKind) (map[string][]model.Bar, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(b.retryDelay):
			}
		}
		attemptCtx, cancel := context.WithTimeout(ctx, b.chunkTimeout)
		var (
			bars map[string][]model.Bar
			err  error
		)
		if kind == MinuteWindow {
			bars, err = b.fetcher.FetchMinuteBars(attemptCtx, symbols)
		} else {
			bars, err = b.fetcher.FetchDayBars(attemptCtx, symbols)
		}
		cancel()
		if err == nil {
			return bars, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

// chunkSymbols partitions symbols into consecutive chunks of at most size.
func chunkSymbols(symbols []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(symbols); start += size {
		end := start + size
		if end > len(symbols) {
			end = len(symbols)
		}
		chunks = append(chunks, symbols[start:end])
	}
	return chunks
}
