// Package tradingview provides a client for the TradingView market data API hosted on RapidAPI.
package tradingview

import "time"

const (
	// DefaultHost is the RapidAPI host of the TradingView API.
	DefaultHost = "tradingview18.p.rapidapi.com"
	// DefaultBaseURL is the base URL requests are sent to.
	DefaultBaseURL = "https://" + DefaultHost
	// DefaultTimeout bounds every remote call.
	DefaultTimeout = 10 * time.Second
)

// Config holds configuration for the TradingView API client.
type Config struct {
	APIKey             string        `yaml:"api_key"`               // sent as x-rapidapi-key
	APIHost            string        `yaml:"api_host"`              // sent as x-rapidapi-host
	BaseURL            string        `yaml:"base_url"`              // e.g. "https://tradingview18.p.rapidapi.com"
	Timeout            time.Duration `yaml:"timeout"`               // HTTP request timeout
	RateLimitPerMinute int           `yaml:"rate_limit_per_minute"` // 0 disables client-side limiting
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		APIHost: DefaultHost,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}
