// Package bleveindex はbleveのインメモリインデックスを使った曖昧一致マッチャーを提供します。
package bleveindex

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"stock_dashboard/internal/feature/search/domain/entity"
	"stock_dashboard/internal/feature/search/usecase"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// フィールドごとの重み。
var fieldWeights = []struct {
	field string
	boost float64
}{
	{"symbol", 0.4},
	{"name", 0.3},
	{"sector", 0.2},
	{"keywords", 0.1},
}

// fuzzyRatio はクエリ長に対して許容する編集距離の割合です。
const fuzzyRatio = 0.3

// bleveの曖昧検索が扱える最大編集距離
const maxFuzziness = 2

// Matcher はカタログをインメモリで索引し、重み付きの曖昧検索を行います。
// 構築後は読み取り専用です。
type Matcher struct {
	index bleve.Index
	order map[string]int // symbol -> catalog position
}

// MatcherがMatcherインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.Matcher = (*Matcher)(nil)

// NewMatcher は指定された銘柄をすべて索引したMatcherを作成します。
func NewMatcher(entries []entity.EnrichedInstrument) (*Matcher, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	order := make(map[string]int, len(entries))
	batch := idx.NewBatch()
	for i, e := range entries {
		order[e.Symbol] = i
		doc := map[string]interface{}{
			"symbol":   e.Symbol,
			"name":     e.Name,
			"sector":   e.Sector,
			"keywords": slices.Clone(e.Keywords),
		}
		if err := batch.Index(e.Symbol, doc); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %s: %w", e.Symbol, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("index catalog: %w", err)
	}

	return &Matcher{index: idx, order: order}, nil
}

// Build はusecase.MatcherFactoryとして使えるコンストラクタです。
func Build(entries []entity.EnrichedInstrument) (usecase.Matcher, error) {
	return NewMatcher(entries)
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	stockMapping := bleve.NewDocumentMapping()
	stockMapping.Dynamic = false

	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	textFieldMapping.Store = false
	textFieldMapping.IncludeInAll = false
	for _, fw := range fieldWeights {
		stockMapping.AddFieldMappingsAt(fw.field, textFieldMapping)
	}

	indexMapping.DefaultMapping = stockMapping
	return indexMapping
}

// Match は q に曖昧一致する銘柄のシンボルを関連度の高い順に返します。
// 同スコアの場合はカタログ順です。q はすでに正規化済み（trim + 小文字化）であることを前提とします。
func (m *Matcher) Match(ctx context.Context, q string) ([]string, error) {
	q = strings.NewReplacer("*", "", "?", "").Replace(q)
	if strings.TrimSpace(q) == "" || len(m.order) == 0 {
		return nil, nil
	}

	fuzziness := min(maxFuzziness, int(float64(len([]rune(q)))*fuzzyRatio))
	singleToken := !strings.ContainsFunc(q, func(r rune) bool { return r == ' ' || r == '\t' })

	qs := make([]query.Query, 0, len(fieldWeights)*2)
	for _, fw := range fieldWeights {
		mq := bleve.NewMatchQuery(q)
		mq.SetField(fw.field)
		mq.SetFuzziness(fuzziness)
		mq.SetBoost(fw.boost)
		// 複数語のクエリはすべての語を含むフィールドのみ一致させる
		if !singleToken {
			mq.SetOperator(query.MatchQueryOperatorAnd)
		}
		qs = append(qs, mq)

		// フィールド内の位置に依存しない部分一致
		if singleToken {
			wq := bleve.NewWildcardQuery("*" + q + "*")
			wq.SetField(fw.field)
			wq.SetBoost(fw.boost)
			qs = append(qs, wq)
		}
	}

	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), len(m.order), 0, false)
	res, err := m.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	type scored struct {
		symbol string
		score  float64
		pos    int
	}
	hits := make([]scored, 0, len(res.Hits))
	for _, h := range res.Hits {
		pos, ok := m.order[h.ID]
		if !ok {
			continue
		}
		hits = append(hits, scored{symbol: h.ID, score: h.Score, pos: pos})
	}
	slices.SortFunc(hits, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return a.pos - b.pos
		}
	})

	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.symbol)
	}
	return out, nil
}

// Close はインデックスを解放します。
func (m *Matcher) Close() error {
	return m.index.Close()
}
