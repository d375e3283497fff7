// Package generation produces AI answers via the Google Gemini API.
package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fibank-ai/bankbot/internal/config"
)

// Generator defines the interface for answer generation.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Available() bool
}

// Config holds generation client configuration.
type Config struct {
	APIKey  string
	Model   string // e.g. "gemini-1.5-flash"
	Timeout time.Duration
}

// Client generates answers using a Gemini chat model. A missing API key
// produces an unavailable client rather than an error, so the bot starts
// and degrades to catalog-only answers.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
}

// NewClient creates a Gemini generation client.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}

	c := &Client{
		modelName: cfg.Model,
		timeout:   cfg.Timeout,
	}

	// A placeholder key means generation is disabled, not misconfigured.
	if config.IsPlaceholderAPIKey(cfg.APIKey) {
		return c, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	c.client = client
	c.model = client.GenerativeModel(cfg.Model)
	return c, nil
}

// Available reports whether the client can reach the API.
func (c *Client) Available() bool {
	return c.model != nil
}

// Generate produces an answer for the given prompt.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("generation is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", fmt.Errorf("response contained no text")
	}

	return answer, nil
}

// Model returns the model being used.
func (c *Client) Model() string {
	return c.modelName
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

var _ Generator = (*Client)(nil)
