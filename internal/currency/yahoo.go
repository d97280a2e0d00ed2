package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

const yahooUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"

// yahooChartResponse is the subset of the Yahoo Finance v8 chart payload we read.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// yahooRate is a fetched rate and when it was fetched.
type yahooRate struct {
	rate      decimal.Decimal
	fetchedAt time.Time
}

// YahooRates fetches forex rates from Yahoo Finance (tickers like "USDEUR=X").
// Each pair is kept in memory for ttl and refetched once it is older; a
// non-positive ttl disables the in-process cache. Put a CachedRates in front
// to share rates across processes.
type YahooRates struct {
	httpClient *http.Client
	baseURL    string
	ttl        time.Duration
	now        func() time.Time
	mu         sync.RWMutex
	rates      map[string]yahooRate
}

// NewYahooRates creates a Yahoo Finance rate source hitting baseURL
// (e.g. https://query1.finance.yahoo.com/v8/finance/chart).
func NewYahooRates(httpClient *http.Client, baseURL string, ttl time.Duration) *YahooRates {
	return &YahooRates{
		httpClient: httpClient,
		baseURL:    baseURL,
		ttl:        ttl,
		now:        time.Now,
		rates:      make(map[string]yahooRate),
	}
}

// Rate returns the from→to rate, fetching it when absent or older than the ttl.
func (y *YahooRates) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	pair := from + to

	y.mu.RLock()
	cached, ok := y.rates[pair]
	y.mu.RUnlock()
	if ok && y.now().Sub(cached.fetchedAt) < y.ttl {
		return cached.rate, nil
	}

	rate, err := y.fetchRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	y.mu.Lock()
	y.rates[pair] = yahooRate{rate: rate, fetchedAt: y.now()}
	y.mu.Unlock()

	return rate, nil
}

// fetchRate fetches one forex pair. A chart error from Yahoo means the pair
// does not exist and is reported as an unknown currency.
func (y *YahooRates) fetchRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	ticker := from + to + "=X"
	url := y.baseURL + "/" + ticker + "?interval=1d&range=1d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("building forex request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("forex http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return decimal.Zero, &UnknownCurrencyError{Code: from}
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("forex request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return decimal.Zero, fmt.Errorf("decoding forex response for %s: %w", ticker, err)
	}

	if chartResp.Chart.Error != nil || len(chartResp.Chart.Result) == 0 {
		return decimal.Zero, &UnknownCurrencyError{Code: from}
	}

	price := chartResp.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return decimal.Zero, fmt.Errorf("invalid forex rate for %s: %f", ticker, price)
	}

	return decimal.NewFromFloat(price), nil
}
