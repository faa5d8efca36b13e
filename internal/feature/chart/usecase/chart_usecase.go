// Package usecase は価格チャート用の時系列データを生成するビジネスロジックを実装します。
package usecase

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	catalog "stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/chart/domain/entity"

	"github.com/shopspring/decimal"
)

const (
	// DefaultDays は日足チャートのデフォルト日数です。
	DefaultDays = 30
	// MaxDays は日足チャートの最大日数です。
	MaxDays = 365
	// DefaultHours は時間足チャートのデフォルト時間数です。
	DefaultHours = 24
	// MaxHours は時間足チャートの最大時間数です。
	MaxHours = 168
)

// InstrumentFinder はカタログから銘柄を引く読み取りレイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type InstrumentFinder interface {
	Find(symbol string) (catalog.Instrument, bool)
}

// chartUsecase はカタログ価格を基準に合成チャートを生成します。
type chartUsecase struct {
	catalog InstrumentFinder
	now     func() time.Time
}

// NewChartUsecase はchartUsecaseの新しいインスタンスを生成します。
// now が nil の場合は time.Now を使用します。
func NewChartUsecase(catalog InstrumentFinder, now func() time.Time) *chartUsecase {
	if now == nil {
		now = time.Now
	}
	return &chartUsecase{catalog: catalog, now: now}
}

// History は直近 days 日分の日足を古い順に返します。
// 未知の銘柄の場合は空のスライスを返します。
func (u *chartUsecase) History(symbol string, days int) []entity.PricePoint {
	days = clamp(days, DefaultDays, MaxDays)

	in, ok := u.catalog.Find(symbol)
	if !ok {
		return []entity.PricePoint{}
	}

	now := u.now().UTC()
	rng := seeded(symbol, now)
	out := make([]entity.PricePoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		variation := (rng.Float64() - 0.5) * 0.1
		dayVariation := math.Sin(float64(i)*0.1) * 0.05
		out = append(out, entity.PricePoint{
			Symbol: in.Symbol,
			Time:   now.AddDate(0, 0, -i),
			Price:  roundCents(in.Price * (1 + variation + dayVariation)),
			Volume: 10_000_000 + rng.Int64N(50_000_000),
		})
	}
	return out
}

// Intraday は直近 hours 時間分の時間足を古い順に返します。
// 未知の銘柄の場合は空のスライスを返します。
func (u *chartUsecase) Intraday(symbol string, hours int) []entity.PricePoint {
	hours = clamp(hours, DefaultHours, MaxHours)

	in, ok := u.catalog.Find(symbol)
	if !ok {
		return []entity.PricePoint{}
	}

	now := u.now().UTC()
	rng := seeded(symbol+"/intraday", now)
	out := make([]entity.PricePoint, 0, hours)
	for i := hours - 1; i >= 0; i-- {
		variation := (rng.Float64() - 0.5) * 0.02
		out = append(out, entity.PricePoint{
			Symbol: in.Symbol,
			Time:   now.Add(-time.Duration(i) * time.Hour),
			Price:  roundCents(in.Price * (1 + variation)),
			Volume: 100_000 + rng.Int64N(1_000_000),
		})
	}
	return out
}

// clamp は n が未指定(<=0)ならデフォルト、上限超過なら上限を返します。
func clamp(n, def, upper int) int {
	switch {
	case n <= 0:
		return def
	case n > upper:
		return upper
	default:
		return n
	}
}

// seeded は銘柄と日付ごとに固定された乱数源を返します。同じ日の再取得は同じチャートになります。
func seeded(key string, now time.Time) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	day := uint64(now.Unix() / 86400)
	return rand.New(rand.NewPCG(h.Sum64(), day))
}

func roundCents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
