package entity

// Filters narrows a ranked result list. Zero values are treated as unset.
type Filters struct {
	Sector   string  // case-insensitive substring of the sector
	MinPrice float64 // inclusive
	MaxPrice float64 // inclusive
}

// Suggestion is the reduced projection used for type-ahead results.
type Suggestion struct {
	Symbol        string
	Name          string
	Sector        string
	Price         float64
	Change        float64
	ChangePercent float64
	Logo          string
}

// Trending is a symbol currently drawing attention, with the reason why.
type Trending struct {
	Symbol string
	Name   string
	Reason string
}
