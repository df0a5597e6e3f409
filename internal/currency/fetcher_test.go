package currency

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/girotrack/girotrack-backend/pkg/config"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

func TestHTTPFetcherParsesAndInvertsRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"result": "success",
			"base_code": "EUR",
			"rates": {"EUR": 1, "USD": 1.25, "BRL": 5.0, "ZZZ": 3.0}
		}`))
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(config.RatesConfig{URL: server.URL, FetchTimeout: time.Second})
	if err != nil {
		t.Fatalf("new fetcher: %v", err)
	}

	rates, err := fetcher.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if got := rates[enums.CurrencyUSD]; !got.Equal(decimal.RequireFromString("0.8")) {
		t.Fatalf("expected USD rate inverted to 0.8 EUR, got %s", got)
	}
	if got := rates[enums.CurrencyBRL]; !got.Equal(decimal.RequireFromString("0.2")) {
		t.Fatalf("expected BRL rate inverted to 0.2 EUR, got %s", got)
	}
	if _, ok := rates[enums.Currency("ZZZ")]; ok {
		t.Fatal("unsupported currencies must be dropped")
	}
}

func TestHTTPFetcherRejectsNonEURBase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": "success", "base_code": "USD", "rates": {"EUR": 0.9}}`))
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(config.RatesConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("new fetcher: %v", err)
	}
	if _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Fatal("expected non-EUR base to be rejected")
	}
}

func TestHTTPFetcherRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	fetcher, err := NewHTTPFetcher(config.RatesConfig{URL: server.URL})
	if err != nil {
		t.Fatalf("new fetcher: %v", err)
	}
	if _, err := fetcher.Fetch(context.Background()); err == nil {
		t.Fatal("expected non-200 status to fail the fetch")
	}
}
