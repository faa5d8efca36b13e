// Package handler はchartフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"net/http"
	"strconv"

	"stock_dashboard/internal/feature/chart/domain/entity"
	"stock_dashboard/internal/feature/chart/transport/http/dto"

	"github.com/gin-gonic/gin"
)

// ChartUsecase は価格チャート生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ChartUsecase interface {
	History(symbol string, days int) []entity.PricePoint
	Intraday(symbol string, hours int) []entity.PricePoint
}

// ChartHandler は価格チャートのHTTPリクエストを処理します。
type ChartHandler struct {
	uc ChartUsecase
}

// NewChartHandler は指定されたusecaseでChartHandlerの新しいインスタンスを生成します。
func NewChartHandler(uc ChartUsecase) *ChartHandler {
	return &ChartHandler{uc: uc}
}

// History は銘柄の日足チャートをJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/history?days=30
func (h *ChartHandler) History(c *gin.Context) {
	days, ok := positiveQuery(c, "days")
	if !ok {
		return
	}

	points := h.uc.History(c.Param("symbol"), days)
	out := make([]dto.HistoryPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.HistoryPointResponse{
			Date:      p.Time.UTC().Format("2006-01-02"),
			Timestamp: p.Time.UnixMilli(),
			Price:     p.Price,
			Volume:    p.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Intraday は銘柄の時間足チャートをJSONで返します。
//
// エンドポイント例:
// GET /stocks/:symbol/intraday?hours=24
func (h *ChartHandler) Intraday(c *gin.Context) {
	hours, ok := positiveQuery(c, "hours")
	if !ok {
		return
	}

	points := h.uc.Intraday(c.Param("symbol"), hours)
	out := make([]dto.IntradayPointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, dto.IntradayPointResponse{
			Time:      p.Time.UTC().Format("03:04 PM"),
			Timestamp: p.Time.UnixMilli(),
			Price:     p.Price,
			Volume:    p.Volume,
		})
	}
	c.JSON(http.StatusOK, out)
}

// positiveQuery は未指定なら0（usecase側のデフォルト）を返し、不正値なら400を書き込みます。
func positiveQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid " + key + ": " + strconv.Quote(raw)})
		return 0, false
	}
	return n, true
}
