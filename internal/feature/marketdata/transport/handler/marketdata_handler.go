// Package handler はmarketdataフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"net/http"

	"stock_dashboard/internal/feature/marketdata/domain/entity"
	"stock_dashboard/internal/feature/marketdata/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// MarketDataUsecase はリモート市場データのユースケースインターフェースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type MarketDataUsecase interface {
	Details(ctx context.Context, symbol string) (*entity.StockDetails, error)
	Latest() (*entity.StockDetails, bool)
	SearchSymbols(ctx context.Context, query string) (entity.SymbolSearch, error)
}

// MarketDataHandler は銘柄詳細とシンボル検索のHTTPリクエストを処理します。
type MarketDataHandler struct {
	uc MarketDataUsecase
}

// NewMarketDataHandler は新しい MarketDataHandler を作成します。
func NewMarketDataHandler(uc MarketDataUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc}
}

// ToDetailsResponse は整形済みの詳細情報をレスポンスDTOに変換します。
// 値のない項目は "N/A" で表示します。
func ToDetailsResponse(d *entity.StockDetails) dto.DetailsResponse {
	return dto.DetailsResponse{
		Symbol:        d.Symbol,
		Name:          d.Name,
		Price:         d.Price,
		PriceDisplay:  dto.PriceDisplay(d.Price, d.Currency),
		Change:        d.Change,
		ChangePercent: d.ChangePercent,
		Currency:      d.Currency,
		Volume:        dto.OrNotAvailable(d.Volume),
		MarketCap:     dto.OrNotAvailable(d.MarketCap),
		Sector:        dto.OrNotAvailable(d.Sector),
		Industry:      dto.OrNotAvailable(d.Industry),
		Description:   dto.OrNotAvailable(d.Description),
		Website:       dto.OrNotAvailable(d.Website),
		Employees:     dto.OrNotAvailable(d.Employees),
		Headquarters:  dto.OrNotAvailable(d.Headquarters),
		Founded:       dto.OrNotAvailable(d.Founded),
		Logo:          d.Logo,
		RawData: dto.RawDataResponse{
			Quote:      d.RawData.Quote,
			Profile:    d.RawData.Profile,
			Financials: d.RawData.Financials,
		},
		FetchedAt: d.FetchedAt.UTC(),
	}
}

// Details は気配値・プロフィール・財務情報をまとめた銘柄詳細を返します。
// 一部のリモート呼び出しが失敗しても、取得できた情報で200を返します。
//
// GET /stocks/:symbol/details
func (h *MarketDataHandler) Details(c *gin.Context) {
	d, err := h.uc.Details(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		if errors.Is(err, entity.ErrSymbolRequired) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, ToDetailsResponse(d))
}

// Latest は直近に取得した銘柄詳細を返します。まだない場合は404です。
//
// GET /stocks/details/latest
func (h *MarketDataHandler) Latest(c *gin.Context) {
	d, ok := h.uc.Latest()
	if !ok {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "no details fetched yet"})
		return
	}
	c.JSON(http.StatusOK, ToDetailsResponse(d))
}

// Lookup はリモートのシンボル検索結果を返します。
// リモート側の失敗は success=false として200で返します。
//
// GET /symbols/lookup?q=apple
func (h *MarketDataHandler) Lookup(c *gin.Context) {
	res, err := h.uc.SearchSymbols(c.Request.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, entity.ErrQueryRequired) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]dto.SymbolMatchItem, 0, len(res.Matches))
	for _, m := range res.Matches {
		out = append(out, dto.SymbolMatchItem{
			Symbol:   m.Symbol,
			Name:     m.Name,
			Exchange: m.Exchange,
			Type:     m.Type,
			Currency: m.Currency,
			FullData: m.FullData,
		})
	}
	c.JSON(http.StatusOK, dto.SymbolLookupResponse{
		Success: res.Success,
		Error:   res.Error,
		Data:    out,
	})
}
