// Package dto defines data transfer objects for the catalog HTTP API.
package dto

import "time"

// InstrumentItem is one catalog entry in API responses.
type InstrumentItem struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	MarketCap     string  `json:"marketCap"`
	Volume        string  `json:"volume"`
	Logo          string  `json:"logo"`
}

// MarketIndexItem is one market overview index.
type MarketIndexItem struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// NewsItem is one news feed entry.
type NewsItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Symbol    string    `json:"symbol"`
}

// ErrorResponse is the body returned on failures.
type ErrorResponse struct {
	Error string `json:"error"`
}
