// Package entity defines the domain models for the chart feature.
package entity

import "time"

// PricePoint is one sample of a price chart.
type PricePoint struct {
	Symbol string    // Stock ticker symbol (e.g., "AAPL")
	Time   time.Time // Start of the sampled period
	Price  float64   // Price rounded to cents
	Volume int64     // Traded volume during the period
}
