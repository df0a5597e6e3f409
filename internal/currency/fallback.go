package currency

import (
	"github.com/girotrack/girotrack-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// fallbackRates is the static approximation used when the external rate
// source is unreachable and no cached table exists. Values are EUR per
// unit of the keyed currency. Conversions must always succeed, so this
// table covers every currency the platform accepts.
var fallbackRates = map[enums.Currency]decimal.Decimal{
	enums.CurrencyEUR: decimal.NewFromInt(1),
	enums.CurrencyUSD: decimal.RequireFromString("0.92"),
	enums.CurrencyBRL: decimal.RequireFromString("0.17"),
	enums.CurrencyGBP: decimal.RequireFromString("1.17"),
	enums.CurrencyCHF: decimal.RequireFromString("1.04"),
	enums.CurrencyPLN: decimal.RequireFromString("0.23"),
	enums.CurrencySEK: decimal.RequireFromString("0.088"),
	enums.CurrencyNOK: decimal.RequireFromString("0.086"),
	enums.CurrencyDKK: decimal.RequireFromString("0.134"),
	enums.CurrencyCZK: decimal.RequireFromString("0.04"),
	enums.CurrencyHUF: decimal.RequireFromString("0.0025"),
	enums.CurrencyRON: decimal.RequireFromString("0.20"),
}

// FallbackRates returns a copy of the static table.
func FallbackRates() map[enums.Currency]decimal.Decimal {
	copied := make(map[enums.Currency]decimal.Decimal, len(fallbackRates))
	for k, v := range fallbackRates {
		copied[k] = v
	}
	return copied
}
