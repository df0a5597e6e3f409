package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/girotrack/girotrack-backend/pkg/config"
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Fetcher retrieves a fresh rate table, normalized to EUR per unit.
type Fetcher interface {
	Fetch(ctx context.Context) (map[enums.Currency]decimal.Decimal, error)
}

// HTTPFetcher pulls rates from a JSON rate API that quotes a fixed EUR
// base. The HTTP client carries a hard timeout so a slow rate source can
// never stall an aggregation request.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher builds a fetcher from the rates configuration.
func NewHTTPFetcher(cfg config.RatesConfig) (*HTTPFetcher, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("rates url is required")
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPFetcher{
		url:    cfg.URL,
		client: &http.Client{Timeout: timeout},
	}, nil
}

type ratesResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// Fetch calls the rate API and inverts the EUR-base quotes into EUR per
// unit of each supported currency. Unsupported currencies in the response
// are ignored.
func (f *HTTPFetcher) Fetch(ctx context.Context) (map[enums.Currency]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("building rates request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling rates api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates api returned status %d", resp.StatusCode)
	}

	var payload ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding rates response: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("rates api result %q", payload.Result)
	}
	if payload.BaseCode != "" && payload.BaseCode != enums.CurrencyEUR.String() {
		return nil, fmt.Errorf("unexpected rates base %q", payload.BaseCode)
	}

	one := decimal.NewFromInt(1)
	table := map[enums.Currency]decimal.Decimal{
		enums.CurrencyEUR: one,
	}
	for code, quote := range payload.Rates {
		cur, err := enums.ParseCurrency(code)
		if err != nil {
			continue
		}
		if quote <= 0 {
			continue
		}
		table[cur] = one.Div(decimal.NewFromFloat(quote))
	}

	if len(table) < 2 {
		return nil, fmt.Errorf("rates response contained no supported currencies")
	}
	return table, nil
}
