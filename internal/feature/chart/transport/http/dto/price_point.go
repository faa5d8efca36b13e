package dto

// HistoryPointResponse は日足チャート1点のレスポンスDTOです。
type HistoryPointResponse struct {
	Date      string  `json:"date"`      // 日付 (YYYY-MM-DD)
	Timestamp int64   `json:"timestamp"` // Unixミリ秒
	Price     float64 `json:"price"`     // 価格
	Volume    int64   `json:"volume"`    // 出来高
}

// IntradayPointResponse は時間足チャート1点のレスポンスDTOです。
type IntradayPointResponse struct {
	Time      string  `json:"time"`      // 時刻 (hh:mm AM/PM)
	Timestamp int64   `json:"timestamp"` // Unixミリ秒
	Price     float64 `json:"price"`     // 価格
	Volume    int64   `json:"volume"`    // 出来高
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}
