// Package usecase はリモートの市場データを集約・整形するビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"stock_dashboard/internal/feature/marketdata/domain/entity"

	"golang.org/x/sync/errgroup"
)

// MarketDataClient はリモートの市場データAPIを抽象化します。
// 各メソッドはエラーを返さず、失敗は LookupResult{Success: false} として返します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketDataClient interface {
	GetQuote(ctx context.Context, symbol string) *entity.LookupResult
	GetProfile(ctx context.Context, symbol string) *entity.LookupResult
	GetFinancials(ctx context.Context, symbol string) *entity.LookupResult
	AutoComplete(ctx context.Context, query string) *entity.LookupResult
}

// DetailsStore は最後に整形した詳細情報を保持します。
type DetailsStore interface {
	Store(d *entity.StockDetails)
	Load() (*entity.StockDetails, bool)
}

// MarketDataUsecase は複数のリモート呼び出しを1つのレコードにまとめます。
type MarketDataUsecase struct {
	client MarketDataClient
	latest DetailsStore
	now    func() time.Time
}

// NewMarketDataUsecase はMarketDataUsecaseの新しいインスタンスを生成します。
// latest が nil の場合、直近の詳細情報は保持しません。
func NewMarketDataUsecase(client MarketDataClient, latest DetailsStore) *MarketDataUsecase {
	return &MarketDataUsecase{client: client, latest: latest, now: time.Now}
}

// FetchComprehensive は気配値・プロフィール・財務情報の3つを並行に取得し、
// すべてが完了してから1つのレコードにまとめます。
// 失敗した呼び出しの枠は nil になり、他の呼び出しには影響しません。
// 組み立て自体が失敗した場合は、3つとも nil で Error を設定したレコードを返します。
func (u *MarketDataUsecase) FetchComprehensive(ctx context.Context, symbol string) (rec *entity.AggregatedRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("failed to assemble market data", "symbol", symbol, "panic", r)
			rec = &entity.AggregatedRecord{
				Symbol:    symbol,
				Timestamp: u.now().UTC(),
				Error:     fmt.Sprint(r),
			}
		}
	}()

	lookups := []struct {
		name string
		fn   func(context.Context, string) *entity.LookupResult
	}{
		{"quote", u.client.GetQuote},
		{"profile", u.client.GetProfile},
		{"financials", u.client.GetFinancials},
	}
	slots := make([]*entity.LookupResult, len(lookups))

	// 失敗はデータとして扱うため、どのgoroutineもエラーを返さない
	var g errgroup.Group
	for i, l := range lookups {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("market data lookup panicked", "lookup", l.name, "symbol", symbol, "panic", r)
				}
			}()
			res := l.fn(ctx, symbol)
			if res == nil || !res.Success {
				if res != nil {
					slog.Warn("market data lookup failed", "lookup", l.name, "symbol", symbol, "error", res.Error)
				}
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return &entity.AggregatedRecord{
		Symbol:     symbol,
		Quote:      slots[0],
		Profile:    slots[1],
		Financials: slots[2],
		Timestamp:  u.now().UTC(),
	}
}

// Details は銘柄の詳細情報を取得・整形し、直近の結果として保持します。
func (u *MarketDataUsecase) Details(ctx context.Context, symbol string) (*entity.StockDetails, error) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return nil, entity.ErrSymbolRequired
	}

	rec := u.FetchComprehensive(ctx, symbol)
	details := FormatComprehensive(rec)
	if rec.Error == "" && u.latest != nil {
		u.latest.Store(details)
	}
	return details, nil
}

// Latest は直近に整形した詳細情報を返します。
func (u *MarketDataUsecase) Latest() (*entity.StockDetails, bool) {
	if u.latest == nil {
		return nil, false
	}
	return u.latest.Load()
}

// SearchSymbols はリモートのシンボル検索を行い、結果を正規化して返します。
func (u *MarketDataUsecase) SearchSymbols(ctx context.Context, query string) (entity.SymbolSearch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entity.SymbolSearch{}, entity.ErrQueryRequired
	}

	res := u.client.AutoComplete(ctx, query)
	if res == nil {
		return entity.SymbolSearch{Matches: []entity.SymbolMatch{}, Error: "no response"}, nil
	}
	return entity.SymbolSearch{
		Success: res.Success,
		Error:   res.Error,
		Matches: FormatSearchResults(res.Payload()),
	}, nil
}
