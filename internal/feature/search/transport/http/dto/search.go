package dto

// SearchResultItem は検索結果1件のレスポンスDTOです。
type SearchResultItem struct {
	Symbol        string   `json:"symbol"`
	Name          string   `json:"name"`
	Sector        string   `json:"sector"`
	Price         float64  `json:"price"`
	Change        float64  `json:"change"`
	ChangePercent float64  `json:"changePercent"`
	MarketCap     string   `json:"marketCap"`
	Volume        string   `json:"volume"`
	Logo          string   `json:"logo"`
	Keywords      []string `json:"keywords"`
}

// SuggestionItem は入力補完候補のレスポンスDTOです。
type SuggestionItem struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Sector        string  `json:"sector"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Logo          string  `json:"logo"`
}

// TrendingItem は注目銘柄のレスポンスDTOです。
type TrendingItem struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
