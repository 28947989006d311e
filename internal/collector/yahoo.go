package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"EquityPulse/internal/model"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using the Yahoo Finance spark API, which
// serves one-day chart data for many symbols in a single request.
type YahooFetcher struct {
	Client  *http.Client
	BaseURL string
	limiter *rate.Limiter
}

// NewYahooFetcher creates a new Yahoo Finance fetcher. requestsPerSecond
// bounds the outbound request rate across all batches.
func NewYahooFetcher(proxyURL string, requestsPerSecond int) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 4
	}
	return &YahooFetcher{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: defaultYahooBaseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// sparkResponse is the response structure from the Yahoo spark API: one chart
// result per requested symbol.
type sparkResponse struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp  []int64 `json:"timestamp"`
				Indicators struct {
					Quote []struct {
						Open   []interface{} `json:"open"`
						High   []interface{} `json:"high"`
						Low    []interface{} `json:"low"`
						Close  []interface{} `json:"close"`
						Volume []interface{} `json:"volume"`
					} `json:"quote"`
				} `json:"indicators"`
			} `json:"response"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"spark"`
}

// toFloat converts a JSON quote value. Nulls become NaN so missing data stays
// distinguishable from a real zero.
func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return math.NaN()
	}
}

// at indexes a quote array that may be shorter than the timestamp array.
func at(vals []interface{}, i int) float64 {
	if i >= len(vals) {
		return math.NaN()
	}
	return toFloat(vals[i])
}

func (f *YahooFetcher) fetchSpark(ctx context.Context, symbols []string, interval string) (map[string][]model.Bar, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v8/finance/spark?symbols=%s&range=1d&interval=%s",
		f.BaseURL, url.QueryEscape(strings.Join(symbols, ",")), interval)

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var spark sparkResponse
	if err := json.Unmarshal(body, &spark); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if spark.Spark.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", spark.Spark.Error.Description)
	}
	if len(spark.Spark.Result) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	out := make(map[string][]model.Bar, len(spark.Spark.Result))
	for _, res := range spark.Spark.Result {
		if len(res.Response) == 0 {
			continue
		}
		chart := res.Response[0]
		if len(chart.Timestamp) == 0 || len(chart.Indicators.Quote) == 0 {
			continue
		}
		quote := chart.Indicators.Quote[0]
		bars := make([]model.Bar, 0, len(chart.Timestamp))
		for i, ts := range chart.Timestamp {
			o := at(quote.Open, i)
			h := at(quote.High, i)
			l := at(quote.Low, i)
			c := at(quote.Close, i)
			if math.IsNaN(o) && math.IsNaN(h) && math.IsNaN(l) && math.IsNaN(c) {
				continue // fully null rows (halts, holidays)
			}
			bars = append(bars, model.Bar{
				Time:   time.Unix(ts, 0),
				Open:   o,
				High:   h,
				Low:    l,
				Close:  c,
				Volume: at(quote.Volume, i),
			})
		}
		if len(bars) == 0 {
			continue
		}
		sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
		out[res.Symbol] = bars
	}
	return out, nil
}

func (f *YahooFetcher) FetchDayBars(ctx context.Context, symbols []string) (map[string][]model.Bar, error) {
	return f.fetchSpark(ctx, symbols, "1d")
}

func (f *YahooFetcher) FetchMinuteBars(ctx context.Context, symbols []string) (map[string][]model.Bar, error) {
	return f.fetchSpark(ctx, symbols, "1m")
}
