// Package embedding provides embedding generation services.
package embedding

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fibank-ai/bankbot/internal/config"
)

// Embedder defines the interface for embedding generation.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedSingle(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dimension() int
}

// Config holds embedding client configuration.
type Config struct {
	APIKey    string
	Model     string // e.g. "text-embedding-004"
	Dimension int    // Default: 768
	Timeout   time.Duration
}

// Client generates embeddings using the Google Gemini embedding API.
type Client struct {
	client    *genai.Client
	model     *genai.EmbeddingModel
	modelName string
	dimension int
	timeout   time.Duration
}

// NewClient creates a Gemini embedding client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if config.IsPlaceholderAPIKey(cfg.APIKey) {
		return nil, fmt.Errorf("API key is missing or a placeholder")
	}

	if cfg.Model == "" {
		cfg.Model = "text-embedding-004"
	}

	if cfg.Dimension <= 0 {
		cfg.Dimension = 768
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client:    client,
		model:     client.EmbeddingModel(cfg.Model),
		modelName: cfg.Model,
		dimension: cfg.Dimension,
		timeout:   cfg.Timeout,
	}, nil
}

// Embed generates embeddings for the given texts in a single batch call.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	batch := c.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := c.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("batch embed: %w", err)
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(texts))
	}

	embeddings := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		embeddings[i] = emb.Values
		if len(emb.Values) > 0 && c.dimension != len(emb.Values) {
			c.dimension = len(emb.Values)
		}
	}

	return embeddings, nil
}

// EmbedSingle generates an embedding for a single text.
func (c *Client) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return resp.Embedding.Values, nil
}

// Model returns the model being used.
func (c *Client) Model() string {
	return c.modelName
}

// Dimension returns the embedding dimension.
func (c *Client) Dimension() int {
	return c.dimension
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Disabled is an embedder without credentials. Every call fails with a
// descriptive error, which the retriever absorbs into empty results.
type Disabled struct{}

// Embed always fails.
func (Disabled) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return nil, fmt.Errorf("embedding is not configured")
}

// EmbedSingle always fails.
func (Disabled) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("embedding is not configured")
}

// Model returns a placeholder name.
func (Disabled) Model() string { return "disabled" }

// Dimension returns zero.
func (Disabled) Dimension() int { return 0 }

// MockClient provides a deterministic embedding client for testing.
type MockClient struct {
	dimension int
}

// NewMockClient creates a mock client that generates hash-based embeddings.
func NewMockClient(dimension int) *MockClient {
	if dimension <= 0 {
		dimension = 768
	}
	return &MockClient{dimension: dimension}
}

// Embed generates mock embeddings derived from the text content, so equal
// texts always produce equal vectors.
func (c *MockClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = make([]float32, c.dimension)
		for j, char := range texts[i] {
			embeddings[i][j%c.dimension] += float32(char) / 1000.0
		}
		embeddings[i] = normalize(embeddings[i])
	}
	return embeddings, nil
}

// EmbedSingle generates a mock embedding for a single text.
func (c *MockClient) EmbedSingle(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// Model returns the mock model name.
func (c *MockClient) Model() string {
	return "mock-embedding-model"
}

// Dimension returns the embedding dimension.
func (c *MockClient) Dimension() int {
	return c.dimension
}

func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	norm := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= norm
	}
	return v
}

var (
	_ Embedder = (*Client)(nil)
	_ Embedder = (*MockClient)(nil)
	_ Embedder = Disabled{}
)
