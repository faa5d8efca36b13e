// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"time"

	"stock_dashboard/internal/feature/catalog/domain/entity"
	"stock_dashboard/internal/feature/catalog/usecase"

	"gorm.io/gorm"
)

// InstrumentModel は instruments テーブルの行を表します。
// カタログは読み取り専用で、行の投入は外部のデータロード処理が行います。
type InstrumentModel struct {
	ID            uint      `gorm:"primaryKey"`
	Symbol        string    `gorm:"size:20;not null;uniqueIndex"`
	Name          string    `gorm:"size:255;not null"`
	Sector        string    `gorm:"size:100;not null"`
	Price         float64   `gorm:"not null;default:0"`
	Change        float64   `gorm:"not null;default:0"`
	ChangePercent float64   `gorm:"not null;default:0"`
	MarketCap     string    `gorm:"size:32"`
	Volume        string    `gorm:"size:32"`
	Logo          string    `gorm:"size:32"`
	IsActive      bool      `gorm:"not null;default:true"`
	SortKey       int       `gorm:"not null;default:0"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

// TableName はテーブル名を返します。
func (InstrumentModel) TableName() string {
	return "instruments"
}

func toEntity(m InstrumentModel) entity.Instrument {
	return entity.Instrument{
		Symbol:        m.Symbol,
		Name:          m.Name,
		Sector:        m.Sector,
		Price:         m.Price,
		Change:        m.Change,
		ChangePercent: m.ChangePercent,
		MarketCap:     m.MarketCap,
		Volume:        m.Volume,
		Logo:          m.Logo,
	}
}

// instrumentGorm はInstrumentRepositoryインターフェースのgorm実装です。
type instrumentGorm struct {
	db *gorm.DB
}

var _ usecase.InstrumentRepository = (*instrumentGorm)(nil)

// NewInstrumentRepository は指定されたDB接続でinstrumentGormリポジトリの新しいインスタンスを生成します。
func NewInstrumentRepository(db *gorm.DB) *instrumentGorm {
	return &instrumentGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *instrumentGorm) ListActive(ctx context.Context) ([]entity.Instrument, error) {
	var rows []InstrumentModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Instrument, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
