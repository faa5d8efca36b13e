package entity

import "time"

// MarketIndex is a headline index shown in the market overview.
type MarketIndex struct {
	Name          string
	Symbol        string
	Value         float64
	Change        float64
	ChangePercent float64
}

// NewsItem is a single entry of the news feed, tied to one symbol.
type NewsItem struct {
	ID        int
	Title     string
	Summary   string
	Timestamp time.Time
	Source    string
	Symbol    string
}
