// Package router はHTTPルーティングを定義します。
package router

import (
	"stock_dashboard/internal/app/di"
	platformhandler "stock_dashboard/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter は組み立て済みのハンドラーをルートに登録します。
// ダッシュボードは読み取り専用のため、すべて認証不要です。
func NewRouter(app *di.App) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	health := platformhandler.Health(app.Catalog)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	// カタログ・マーケット概況・ニュース
	r.GET("/stocks", app.CatalogH.List)
	r.GET("/stocks/:symbol", app.CatalogH.Get)
	r.GET("/market/indices", app.CatalogH.Indices)
	r.GET("/news", app.CatalogH.News)

	// 検索
	r.GET("/stocks/popular", app.SearchH.Popular)
	search := r.Group("/search")
	{
		search.GET("", app.SearchH.Search)
		search.GET("/suggestions", app.SearchH.Suggestions)
		search.GET("/filter", app.SearchH.Filter)
		search.GET("/recommendations", app.SearchH.Recommendations)
		search.GET("/trending", app.SearchH.Trending)
	}

	// 価格チャート
	r.GET("/stocks/:symbol/history", app.ChartH.History)
	r.GET("/stocks/:symbol/intraday", app.ChartH.Intraday)

	// リモート市場データ
	r.GET("/stocks/details/latest", app.MarketData.Latest)
	r.GET("/stocks/:symbol/details", app.MarketData.Details)
	r.GET("/symbols/lookup", app.MarketData.Lookup)

	return r
}
