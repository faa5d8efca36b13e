package tradingview

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"stock_dashboard/internal/feature/marketdata/domain/entity"
	"stock_dashboard/internal/feature/marketdata/usecase"
	"stock_dashboard/internal/shared/ratelimiter"
)

// Client はTradingView APIから銘柄情報を取得するMarketDataClient実装です。
// どのメソッドもエラーを返さず、失敗は LookupResult として返します。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// ClientがMarketDataClientを実装していることをコンパイル時に検証します。
var _ usecase.MarketDataClient = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
// limiter が nil の場合はレート制限を行いません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// GetQuote は銘柄の気配値を取得します。
func (c *Client) GetQuote(ctx context.Context, symbol string) *entity.LookupResult {
	return c.get(ctx, "quote", "/symbols/get-quote", url.Values{"symbol": {symbol}})
}

// GetProfile は銘柄の企業プロフィールを取得します。
func (c *Client) GetProfile(ctx context.Context, symbol string) *entity.LookupResult {
	return c.get(ctx, "profile", "/symbols/get-profile", url.Values{"symbol": {symbol}})
}

// GetFinancials は銘柄の財務情報を取得します。
func (c *Client) GetFinancials(ctx context.Context, symbol string) *entity.LookupResult {
	return c.get(ctx, "financials", "/symbols/get-financials", url.Values{"symbol": {symbol}})
}

// AutoComplete はクエリに一致するシンボルを検索します。
func (c *Client) AutoComplete(ctx context.Context, query string) *entity.LookupResult {
	return c.get(ctx, "auto-complete", "/symbols/auto-complete", url.Values{"query": {query}})
}

func (c *Client) get(ctx context.Context, lookup, path string, q url.Values) *entity.LookupResult {
	data, err := c.fetch(ctx, path, q)
	if err != nil {
		slog.Error("tradingview lookup failed", "lookup", lookup, "params", q.Encode(), "error", err)
		return &entity.LookupResult{Success: false, Error: err.Error()}
	}
	slog.Debug("tradingview lookup succeeded", "lookup", lookup, "params", q.Encode())
	return &entity.LookupResult{Success: true, Data: data}
}

func (c *Client) fetch(ctx context.Context, path string, q url.Values) (any, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	// URLを生成
	u := fmt.Sprintf("%s%s?%s", strings.TrimRight(c.cfg.BaseURL, "/"), path, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.APIHost)
	req.Header.Set("Accept", "application/json")

	// リクエストを実行
	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("tradingview http %d", res.StatusCode)
	}

	// JSONレスポンスをそのままデコード（形は呼び出し側で解釈する）
	var body any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return body, nil
}
