package retrieval

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fibank-ai/bankbot/internal/cache"
	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/embedding"
	"github.com/fibank-ai/bankbot/internal/observability"
)

func testCatalog() *catalog.Catalog {
	cards := catalog.SourceTree{
		"Visa": {
			"Visa Gold": {
				catalog.DescriptionAttr: "златна кредитна карта с кешбек",
				"предимства":            []any{"кешбек 1%", "застраховка пътуване"},
			},
			"Visa Classic": {
				catalog.DescriptionAttr: "класическа кредитна карта",
			},
		},
	}
	loans := catalog.SourceTree{
		"Потребителски кредити": {
			"Кредит Комфорт": {
				catalog.DescriptionAttr: "потребителски кредит до 80000 лева",
			},
		},
	}
	return catalog.Build(cards, loans)
}

func newTestRetriever(t *testing.T, cfg Config) *Retriever {
	t.Helper()
	return NewRetriever(testCatalog(), embedding.NewMockClient(64), cache.NewMemoryClient(100), cfg, observability.Nop())
}

func TestRetrieveRanksBySimilarity(t *testing.T) {
	r := NewRetriever(testCatalog(), stubEmbedder{}, nil, Config{TopK: 3, Threshold: -1}, observability.Nop())

	results := r.Retrieve(context.Background(), "златна карта")
	require.Len(t, results, 3)

	assert.Equal(t, "Visa Gold", results[0].Product.Name)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRetrieveTopKTruncation(t *testing.T) {
	r := newTestRetriever(t, Config{TopK: 2, Threshold: -1})

	results := r.Retrieve(context.Background(), "кредит")
	assert.LessOrEqual(t, len(results), 2)
}

func TestRetrieveThresholdFiltersWeakMatches(t *testing.T) {
	r := NewRetriever(testCatalog(), stubEmbedder{}, nil, Config{TopK: 3, Threshold: 0.5}, observability.Nop())

	// Only Visa Gold scores above 0.5 for this query with the stub vectors.
	results := r.Retrieve(context.Background(), "златна карта")
	require.Len(t, results, 1)
	assert.Equal(t, "Visa Gold", results[0].Product.Name)
}

func TestRetrieveBlankQuery(t *testing.T) {
	r := newTestRetriever(t, Config{TopK: 3, Threshold: -1})

	assert.Nil(t, r.Retrieve(context.Background(), "   "))
}

func TestRetrieveEmptyCatalogReturnsNoResults(t *testing.T) {
	r := NewRetriever(catalog.Build(nil, nil), embedding.NewMockClient(64), nil, Config{}, observability.Nop())

	assert.Empty(t, r.Retrieve(context.Background(), "кредитна карта"))
}

func TestIndexIsBuiltLazily(t *testing.T) {
	r := newTestRetriever(t, Config{TopK: 3, Threshold: -1})

	assert.False(t, r.Stats().Built)

	r.Retrieve(context.Background(), "карта")

	stats := r.Stats()
	assert.True(t, stats.Built)
	assert.Equal(t, 3, stats.Documents)
}

func TestSetCatalogInvalidatesIndex(t *testing.T) {
	r := newTestRetriever(t, Config{TopK: 3, Threshold: -1})

	r.Retrieve(context.Background(), "карта")
	require.True(t, r.Stats().Built)

	r.SetCatalog(testCatalog())
	assert.False(t, r.Stats().Built)

	r.Retrieve(context.Background(), "карта")
	assert.True(t, r.Stats().Built)
}

func TestIndexUsesEmbeddingCache(t *testing.T) {
	c := cache.NewMemoryClient(100)
	emb := &countingEmbedder{MockClient: embedding.NewMockClient(64)}

	r := NewRetriever(testCatalog(), emb, c, Config{TopK: 3, Threshold: -1, CacheTTL: time.Minute}, observability.Nop())
	r.Retrieve(context.Background(), "карта")
	firstBatch := emb.batchCalls

	// A fresh retriever over the same cache finds every vector cached.
	r2 := NewRetriever(testCatalog(), emb, c, Config{TopK: 3, Threshold: -1, CacheTTL: time.Minute}, observability.Nop())
	r2.Retrieve(context.Background(), "карта")

	assert.Equal(t, 1, firstBatch)
	assert.Equal(t, firstBatch, emb.batchCalls)
}

func TestRetrieveEmbedderFailureYieldsEmpty(t *testing.T) {
	r := NewRetriever(testCatalog(), failingEmbedder{}, nil, Config{}, observability.Nop())

	assert.Empty(t, r.Retrieve(context.Background(), "кредитна карта"))
}

type countingEmbedder struct {
	*embedding.MockClient
	batchCalls int
}

func (e *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.batchCalls++
	return e.MockClient.Embed(ctx, texts)
}

// stubEmbedder returns fixed vectors so rankings are fully predictable.
// The gold card aligns with the query axis, the classic card is close,
// the loan is orthogonal.
type stubEmbedder struct{}

func (stubEmbedder) vector(text string) []float32 {
	switch {
	case strings.Contains(text, "Visa Gold"):
		return []float32{1, 0, 0}
	case strings.Contains(text, "Visa Classic"):
		return []float32{1, 3, 0}
	case strings.Contains(text, "Комфорт"):
		return []float32{0, 0, 1}
	default:
		return []float32{1, 0.1, 0}
	}
}

func (e stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vecs[i] = e.vector(text)
	}
	return vecs, nil
}

func (e stubEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return e.vector(text), nil
}

func (stubEmbedder) Model() string  { return "stub" }
func (stubEmbedder) Dimension() int { return 3 }

type failingEmbedder struct{}

func (failingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, assert.AnError
}

func (failingEmbedder) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return nil, assert.AnError
}

func (failingEmbedder) Model() string  { return "failing" }
func (failingEmbedder) Dimension() int { return 0 }
