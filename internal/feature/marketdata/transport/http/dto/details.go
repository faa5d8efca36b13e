// Package dto defines data transfer objects for the market data HTTP API.
package dto

import (
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// NotAvailable is rendered for text fields that had no value in any source.
const NotAvailable = "N/A"

// DetailsResponse is the display record for one symbol.
type DetailsResponse struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         float64         `json:"price"`
	PriceDisplay  string          `json:"priceDisplay"`
	Change        float64         `json:"change"`
	ChangePercent float64         `json:"changePercent"`
	Currency      string          `json:"currency"`
	Volume        string          `json:"volume"`
	MarketCap     string          `json:"marketCap"`
	Sector        string          `json:"sector"`
	Industry      string          `json:"industry"`
	Description   string          `json:"description"`
	Website       string          `json:"website"`
	Employees     string          `json:"employees"`
	Headquarters  string          `json:"headquarters"`
	Founded       string          `json:"founded"`
	Logo          string          `json:"logo"`
	RawData       RawDataResponse `json:"rawData"`
	FetchedAt     time.Time       `json:"fetchedAt"`
}

// RawDataResponse carries the upstream payloads as received.
type RawDataResponse struct {
	Quote      any `json:"quote"`
	Profile    any `json:"profile"`
	Financials any `json:"financials"`
}

// SymbolMatchItem is one normalized remote symbol search entry.
type SymbolMatchItem struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	FullData any    `json:"fullData"`
}

// SymbolLookupResponse is the body of a remote symbol search.
type SymbolLookupResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error,omitempty"`
	Data    []SymbolMatchItem `json:"data"`
}

// ErrorResponse is the body returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OrNotAvailable dereferences s, or returns NotAvailable when it is nil.
func OrNotAvailable(s *string) string {
	if s == nil {
		return NotAvailable
	}
	return *s
}

// PriceDisplay formats amount in the currency's minor units, e.g. "$248.42".
// An unknown currency code yields an empty string.
func PriceDisplay(amount float64, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return ""
	}
	factor := decimal.NewFromInt(10).Pow(decimal.NewFromInt(int64(cur.Fraction)))
	minor := decimal.NewFromFloat(amount).Mul(factor).Round(0)
	return money.New(minor.IntPart(), cur.Code).Display()
}
