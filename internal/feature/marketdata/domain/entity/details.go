package entity

import "time"

// StockDetails is the flattened display record built from an AggregatedRecord.
// Optional fields are nil when no source in their fallback chain had a value;
// the display placeholder is chosen by the presentation layer.
type StockDetails struct {
	Symbol        string
	Name          string
	Price         float64
	Change        float64
	ChangePercent float64
	Currency      string
	Volume        *string
	MarketCap     *string
	Sector        *string
	Industry      *string
	Description   *string
	Website       *string
	Employees     *string
	Headquarters  *string
	Founded       *string
	Logo          string
	RawData       RawData
	FetchedAt     time.Time
}

// RawData carries the three lookup payloads verbatim.
type RawData struct {
	Quote      any
	Profile    any
	Financials any
}
