package currency

import (
	"context"
	"errors"
	"time"

	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/girotrack/girotrack-backend/pkg/logger"
	"github.com/girotrack/girotrack-backend/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Amount pairs a monetary value with its currency for batch conversion.
type Amount struct {
	Value    decimal.Decimal
	Currency enums.Currency
}

// ProviderParams groups dependencies for the rate provider.
type ProviderParams struct {
	Cache   *RateCache
	Fetcher Fetcher
	Logger  *logger.Logger
	Metrics *metrics.RatesMetrics
	Now     func() time.Time
}

// Provider converts amounts between currencies through a shared cached
// rate table. Conversion never fails: a dead rate source degrades to the
// last cached table, then to the static fallback.
type Provider struct {
	cache   *RateCache
	fetcher Fetcher
	logg    *logger.Logger
	metrics *metrics.RatesMetrics
	now     func() time.Time
}

// NewProvider builds a rate provider.
func NewProvider(params ProviderParams) (*Provider, error) {
	if params.Cache == nil {
		return nil, errors.New("rate cache is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Provider{
		cache:   params.Cache,
		fetcher: params.Fetcher,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// Convert changes amount from one currency to another. Identical source
// and target short-circuit to the exact input so equal-currency amounts
// never pick up rate-table drift. Rounding is left to the caller's
// presentation layer.
func (p *Provider) Convert(ctx context.Context, amount decimal.Decimal, from, to enums.Currency) decimal.Decimal {
	if from == to {
		return amount
	}

	rates := p.table(ctx)
	rateFrom, okFrom := rates[from]
	rateTo, okTo := rates[to]
	if !okFrom || !okTo || rateTo.IsZero() {
		if p.logg != nil {
			p.logg.Warn(p.logg.WithFields(ctx, map[string]any{
				"from": from.String(),
				"to":   to.String(),
			}), "missing exchange rate, returning amount unconverted")
		}
		return amount
	}

	return amount.Mul(rateFrom).Div(rateTo)
}

// ConvertToEUR converts into the reporting currency.
func (p *Provider) ConvertToEUR(ctx context.Context, amount decimal.Decimal, from enums.Currency) decimal.Decimal {
	return p.Convert(ctx, amount, from, enums.CurrencyReporting)
}

// ConvertSum converts each amount independently and returns the total.
// Addition of independently converted amounts keeps the result order
// independent.
func (p *Provider) ConvertSum(ctx context.Context, items []Amount, to enums.Currency) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(p.Convert(ctx, item.Value, item.Currency, to))
	}
	return total
}

// Refresh forces a fetch and stores the result. Used by the cron warm job.
func (p *Provider) Refresh(ctx context.Context) error {
	if p.fetcher == nil {
		return errors.New("no rate fetcher configured")
	}
	rates, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.metrics.IncFetchFailure()
		return err
	}
	p.metrics.IncFetchSuccess()
	p.cache.Store(rates, p.now())
	return nil
}

// table resolves the rate table for one conversion. Fresh cache wins; a
// stale cache triggers a single-writer refresh while other callers keep
// reading the stale snapshot. With no cache and no reachable source the
// static fallback table is served.
func (p *Provider) table(ctx context.Context) map[enums.Currency]decimal.Decimal {
	snapshot, _ := p.cache.Snapshot()
	if len(snapshot) > 0 && !p.cache.IsStale(p.now()) {
		return snapshot
	}

	if p.fetcher != nil && p.cache.BeginRefresh() {
		defer p.cache.EndRefresh()

		rates, err := p.fetcher.Fetch(ctx)
		if err == nil {
			p.metrics.IncFetchSuccess()
			p.cache.Store(rates, p.now())
			return rates
		}

		p.metrics.IncFetchFailure()
		if p.logg != nil {
			p.logg.Warn(ctx, "exchange rate fetch failed, serving degraded table")
		}
	}

	if len(snapshot) > 0 {
		return snapshot
	}

	p.metrics.IncFallbackUsed()
	return FallbackRates()
}
