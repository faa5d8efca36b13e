// Package entity defines the domain models for the catalog feature.
package entity

import "errors"

// ErrInstrumentNotFound is returned when a symbol is not part of the catalog.
var ErrInstrumentNotFound = errors.New("instrument not found")

// Instrument is one tradable entity in the catalog.
// Symbol is the unique, upper-case ticker and never changes once loaded.
// Numeric fields may be stale; MarketCap and Volume are display strings.
type Instrument struct {
	Symbol        string  // Ticker, e.g. "AAPL"
	Name          string  // Display name, e.g. "Apple Inc."
	Sector        string  // Category label, e.g. "Technology"
	Price         float64 // Last known price
	Change        float64 // Absolute change, may be negative
	ChangePercent float64 // Percent change, may be negative
	MarketCap     string  // e.g. "2.85T"
	Volume        string  // e.g. "45.2M"
	Logo          string  // Opaque presentation token
}
