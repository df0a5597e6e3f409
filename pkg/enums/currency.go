package enums

import (
	"fmt"
	"strings"
)

// Currency is an ISO 4217 code the platform accepts for ledger amounts.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
	CurrencyBRL Currency = "BRL"
	CurrencyGBP Currency = "GBP"
	CurrencyCHF Currency = "CHF"
	CurrencyPLN Currency = "PLN"
	CurrencySEK Currency = "SEK"
	CurrencyNOK Currency = "NOK"
	CurrencyDKK Currency = "DKK"
	CurrencyCZK Currency = "CZK"
	CurrencyHUF Currency = "HUF"
	CurrencyRON Currency = "RON"
)

// CurrencyReporting is the currency cross-tenant aggregates are normalized into.
const CurrencyReporting = CurrencyEUR

var validCurrencies = []Currency{
	CurrencyEUR,
	CurrencyUSD,
	CurrencyBRL,
	CurrencyGBP,
	CurrencyCHF,
	CurrencyPLN,
	CurrencySEK,
	CurrencyNOK,
	CurrencyDKK,
	CurrencyCZK,
	CurrencyHUF,
	CurrencyRON,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the currency is recognized.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrency converts a raw string into a Currency.
func ParseCurrency(value string) (Currency, error) {
	normalized := Currency(strings.ToUpper(strings.TrimSpace(value)))
	for _, candidate := range validCurrencies {
		if candidate == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
