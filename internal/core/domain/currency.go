package domain

import "strings"

// Currency represents a foreign currency the desk can remit in.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // e.g., "USD"
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
}

// BaseCurrency is the currency every order is settled in.
const BaseCurrency = "INR"

// FallbackCurrency is offered for every destination in addition to its local currency.
const FallbackCurrency = "USD"

// SupportedCurrencies lists the remittance currencies by code.
var SupportedCurrencies = map[string]Currency{
	"USD": {CurrencyCode: "USD", Symbol: "$", Name: "US Dollar"},
	"EUR": {CurrencyCode: "EUR", Symbol: "€", Name: "Euro"},
	"GBP": {CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling"},
	"CAD": {CurrencyCode: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	"AUD": {CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	"NZD": {CurrencyCode: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	"SGD": {CurrencyCode: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	"AED": {CurrencyCode: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	"CHF": {CurrencyCode: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	"JPY": {CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen"},
}

// countryCurrency maps an ISO 3166 alpha-2 destination to its local currency.
var countryCurrency = map[string]string{
	"US": "USD",
	"GB": "GBP",
	"CA": "CAD",
	"AU": "AUD",
	"NZ": "NZD",
	"SG": "SGD",
	"AE": "AED",
	"CH": "CHF",
	"JP": "JPY",
	"DE": "EUR", "FR": "EUR", "IE": "EUR", "NL": "EUR", "IT": "EUR", "ES": "EUR",
	"BE": "EUR", "AT": "EUR", "FI": "EUR", "PT": "EUR", "LU": "EUR", "GR": "EUR",
}

// ibanCountries require an IBAN on the beneficiary.
var ibanCountries = map[string]bool{
	"GB": true, "AE": true, "CH": true,
	"DE": true, "FR": true, "IE": true, "NL": true, "IT": true, "ES": true,
	"BE": true, "AT": true, "FI": true, "PT": true, "LU": true, "GR": true,
}

// intermediaryCountries route through a correspondent bank, so intermediary fields are kept.
var intermediaryCountries = map[string]bool{
	"US": true, "CA": true, "AE": true, "SG": true, "JP": true,
}

// AllowedCurrencies returns the currencies offered for a destination country.
// USD is always included, last, unless it is already the local currency.
func AllowedCurrencies(country string) []string {
	country = strings.ToUpper(strings.TrimSpace(country))
	out := make([]string, 0, 2)
	if local, ok := countryCurrency[country]; ok {
		out = append(out, local)
	}
	if len(out) == 0 || out[0] != FallbackCurrency {
		out = append(out, FallbackCurrency)
	}
	return out
}

// IsCurrencyAllowed reports whether currency may be remitted to country.
func IsCurrencyAllowed(country, currency string) bool {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	for _, c := range AllowedCurrencies(country) {
		if c == currency {
			return true
		}
	}
	return false
}

// IsKnownCountry reports whether the destination is in the corridor table.
func IsKnownCountry(country string) bool {
	_, ok := countryCurrency[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

// RequiresIBAN reports whether a beneficiary in country must carry an IBAN.
func RequiresIBAN(country string) bool {
	return ibanCountries[strings.ToUpper(strings.TrimSpace(country))]
}

// UsesIntermediaryBank reports whether intermediary bank fields apply to country.
func UsesIntermediaryBank(country string) bool {
	return intermediaryCountries[strings.ToUpper(strings.TrimSpace(country))]
}
