// Package retrieval implements semantic search over the product catalog.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fibank-ai/bankbot/internal/cache"
	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/embedding"
	"github.com/fibank-ai/bankbot/internal/observability"
)

// Result is one scored catalog product.
type Result struct {
	Product *catalog.Product
	Score   float64
}

// Config holds retriever tuning parameters.
type Config struct {
	TopK      int
	Threshold float64
	CacheTTL  time.Duration
}

// Stats describes the state of the semantic index.
type Stats struct {
	Built     bool
	Documents int
	Model     string
	Dimension int
}

// Retriever ranks catalog products by embedding similarity to a query.
// The index is built lazily on the first search so startup never blocks
// on the embedding API.
type Retriever struct {
	logger   *observability.Logger
	embedder embedding.Embedder
	cache    cache.Client
	cfg      Config

	mu      sync.Mutex
	catalog *catalog.Catalog
	keys    []string
	vectors [][]float32
	built   bool
}

// NewRetriever creates a retriever over the given catalog.
func NewRetriever(cat *catalog.Catalog, embedder embedding.Embedder, cacheClient cache.Client, cfg Config, logger *observability.Logger) *Retriever {
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.3
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if cacheClient == nil {
		cacheClient = cache.NewNopClient()
	}

	return &Retriever{
		logger:   logger,
		embedder: embedder,
		cache:    cacheClient,
		cfg:      cfg,
		catalog:  cat,
	}
}

// Retrieve returns up to TopK products ranked by similarity to the query.
// Failures are logged and reported as an empty result, never an error:
// the caller degrades to non-semantic answers.
func (r *Retriever) Retrieve(ctx context.Context, query string) []Result {
	return r.RetrieveN(ctx, query, r.cfg.TopK)
}

// RetrieveN is Retrieve with an explicit result limit.
func (r *Retriever) RetrieveN(ctx context.Context, query string, topK int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	if topK <= 0 {
		topK = r.cfg.TopK
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureIndex(ctx); err != nil {
		r.logger.Warn().Err(err).Msg("semantic index unavailable")
		return nil
	}

	queryVec, err := r.embedQuery(ctx, query)
	if err != nil {
		r.logger.Warn().Err(err).Msg("query embedding failed")
		return nil
	}

	scored := make([]Result, 0, len(r.keys))
	for i, key := range r.keys {
		product, ok := r.catalog.Get(key)
		if !ok {
			continue
		}
		scored = append(scored, Result{
			Product: product,
			Score:   cosineSimilarity(queryVec, r.vectors[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	// Threshold is applied after truncation, so fewer than TopK results
	// come back when the tail is weak.
	results := scored[:0]
	for _, res := range scored {
		if res.Score > r.cfg.Threshold {
			results = append(results, res)
		}
	}

	return results
}

// SetCatalog replaces the catalog and invalidates the index.
func (r *Retriever) SetCatalog(cat *catalog.Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.catalog = cat
	r.keys = nil
	r.vectors = nil
	r.built = false
}

// Stats reports the current index state.
func (r *Retriever) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Stats{
		Built:     r.built,
		Documents: len(r.keys),
		Model:     r.embedder.Model(),
		Dimension: r.embedder.Dimension(),
	}
}

// ensureIndex builds the index if it is not built yet. Callers hold r.mu.
func (r *Retriever) ensureIndex(ctx context.Context) error {
	if r.built {
		return nil
	}
	if r.catalog == nil || r.catalog.Len() == 0 {
		return fmt.Errorf("catalog is empty")
	}

	start := time.Now()

	keys := r.catalog.Keys()
	sort.Strings(keys)

	vectors := make([][]float32, len(keys))
	var missKeys []int
	var missTexts []string

	for i, key := range keys {
		product, ok := r.catalog.Get(key)
		if !ok {
			continue
		}
		text := documentText(product)

		if vec, ok := r.cachedVector(ctx, text); ok {
			vectors[i] = vec
			continue
		}
		missKeys = append(missKeys, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) > 0 {
		embedded, err := r.embedder.Embed(ctx, missTexts)
		if err != nil {
			return fmt.Errorf("embed catalog: %w", err)
		}
		for j, i := range missKeys {
			vectors[i] = embedded[j]
			r.storeVector(ctx, missTexts[j], embedded[j])
		}
	}

	r.keys = keys
	r.vectors = vectors
	r.built = true

	r.logger.Info().
		Int("documents", len(keys)).
		Int("embedded", len(missTexts)).
		Int("cached", len(keys)-len(missTexts)).
		Dur("duration", time.Since(start)).
		Msg("semantic index built")

	return nil
}

func (r *Retriever) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if vec, ok := r.cachedVector(ctx, query); ok {
		return vec, nil
	}

	vec, err := r.embedder.EmbedSingle(ctx, query)
	if err != nil {
		return nil, err
	}
	r.storeVector(ctx, query, vec)
	return vec, nil
}

func (r *Retriever) cachedVector(ctx context.Context, text string) ([]float32, bool) {
	data, err := r.cache.Get(ctx, cache.EmbeddingKey(r.embedder.Model(), text))
	if err != nil {
		return nil, false
	}

	var vec []float32
	if err := json.Unmarshal(data, &vec); err != nil {
		return nil, false
	}
	return vec, true
}

func (r *Retriever) storeVector(ctx context.Context, text string, vec []float32) {
	data, err := json.Marshal(vec)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, cache.EmbeddingKey(r.embedder.Model(), text), data, r.cfg.CacheTTL); err != nil {
		r.logger.Debug().Err(err).Msg("embedding cache write failed")
	}
}

// documentText assembles the searchable text for a product: its name, the
// free-text description, and any list attributes such as features or
// benefits.
func documentText(p *catalog.Product) string {
	var parts []string
	parts = append(parts, p.Name)
	if p.Description != "" {
		parts = append(parts, p.Description)
	}

	// Attributes are walked in sorted order so the document text, and with
	// it the embedding cache key, is stable across runs.
	attrs := make([]string, 0, len(p.RawAttributes))
	for attr := range p.RawAttributes {
		if attr == catalog.DescriptionAttr || attr == catalog.LinkAttr {
			continue
		}
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	for _, attr := range attrs {
		switch v := p.RawAttributes[attr].(type) {
		case string:
			parts = append(parts, v)
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					items = append(items, s)
				}
			}
			if len(items) > 0 {
				parts = append(parts, strings.Join(items, " "))
			}
		}
	}

	return strings.Join(parts, " ")
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
