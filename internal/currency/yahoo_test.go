package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// newForexMockServer serves chart responses for the tickers in rateMap and a
// chart error for any other ticker. hits counts requests.
func newForexMockServer(rateMap map[string]float64, hits *atomic.Int32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		ticker := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")

		rate, ok := rateMap[ticker]
		if !ok {
			_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
			return
		}
		var resp yahooChartResponse
		resp.Chart.Result = make([]struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		}, 1)
		resp.Chart.Result[0].Meta.Symbol = ticker
		resp.Chart.Result[0].Meta.RegularMarketPrice = rate
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestYahooRates_Rate(t *testing.T) {
	var hits atomic.Int32
	server := newForexMockServer(map[string]float64{"USDEUR=X": 0.92}, &hits)
	defer server.Close()

	y := NewYahooRates(server.Client(), server.URL, time.Hour)

	rate, err := y.Rate(context.Background(), "usd", "eur")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.92")) {
		t.Errorf("rate = %s, want 0.92", rate)
	}

	// Second call is served from the in-memory cache.
	if _, err := y.Rate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 upstream request, got %d", hits.Load())
	}
}

func TestYahooRates_SameCurrency(t *testing.T) {
	y := NewYahooRates(http.DefaultClient, "http://unused.invalid", time.Hour)

	rate, err := y.Rate(context.Background(), "EUR", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.NewFromInt(1)) {
		t.Errorf("rate = %s, want 1", rate)
	}
}

func TestYahooRates_UnknownPair(t *testing.T) {
	var hits atomic.Int32
	server := newForexMockServer(map[string]float64{}, &hits)
	defer server.Close()

	y := NewYahooRates(server.Client(), server.URL, time.Hour)

	_, err := y.Rate(context.Background(), "XYZ", "EUR")
	if !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestYahooRates_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	y := NewYahooRates(server.Client(), server.URL, time.Hour)

	_, err := y.Rate(context.Background(), "USD", "EUR")
	if err == nil {
		t.Fatal("expected error on HTTP 500")
	}
	if errors.Is(err, ErrUnknownCurrency) {
		t.Error("HTTP 500 must not be reported as unknown currency")
	}
}

func TestYahooRates_RefetchAfterTTL(t *testing.T) {
	var hits atomic.Int32
	var price atomic.Value
	price.Store(0.90)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"symbol":"USDEUR=X","regularMarketPrice":%v}}],"error":null}}`, price.Load())
	}))
	defer server.Close()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	y := NewYahooRates(server.Client(), server.URL, time.Minute)
	y.now = func() time.Time { return clock }

	rate, err := y.Rate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.9")) {
		t.Fatalf("rate = %s, want 0.9", rate)
	}

	price.Store(0.50)
	clock = clock.Add(30 * time.Second)
	if rate, _ = y.Rate(context.Background(), "USD", "EUR"); !rate.Equal(decimal.RequireFromString("0.9")) {
		t.Errorf("rate within ttl = %s, want cached 0.9", rate)
	}

	clock = clock.Add(31 * time.Second)
	rate, err = y.Rate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("rate after ttl = %s, want 0.5", rate)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 upstream requests, got %d", hits.Load())
	}
}

func TestYahooRates_BehindCacheSeesNewPrice(t *testing.T) {
	var price atomic.Value
	price.Store(0.90)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"chart":{"result":[{"meta":{"symbol":"USDEUR=X","regularMarketPrice":%v}}],"error":null}}`, price.Load())
	}))
	defer server.Close()

	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	y := NewYahooRates(server.Client(), server.URL, time.Minute)
	y.now = func() time.Time { return clock }
	store := newMemStore()
	cached := NewCachedRates(y, store, time.Minute)

	if _, err := cached.Rate(context.Background(), "USD", "EUR"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The shared entry expires together with the in-process one.
	price.Store(0.50)
	clock = clock.Add(2 * time.Minute)
	store.mu.Lock()
	delete(store.data, "USD:EUR")
	store.mu.Unlock()

	rate, err := cached.Rate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("rate after expiry = %s, want 0.5", rate)
	}
}
