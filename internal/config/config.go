// Package config provides unified configuration loading for the assistant.
// Supports YAML files, a config.env dotenv file, and environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values can use "45s" notation.
type Duration time.Duration

// UnmarshalYAML parses either a duration string or a plain number of
// nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration value")
	}
	*d = Duration(n)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds all configuration for the assistant.
type Config struct {
	Data          DataConfig          `yaml:"data"`
	Generation    GenerationConfig    `yaml:"generation"`
	Embedding     EmbeddingConfig     `yaml:"embedding"`
	Retrieval     RetrievalConfig     `yaml:"retrieval"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// DataConfig holds catalog source file locations.
type DataConfig struct {
	CreditCardsPath string `yaml:"credit_cards_path"`
	CreditsPath     string `yaml:"credits_path"`
	IntentsPath     string `yaml:"intents_path"`
	KeywordsPath    string `yaml:"keywords_path"`
}

// placeholderAPIKeys are values commonly left in sample config files.
var placeholderAPIKeys = map[string]bool{
	"":                  true,
	"your_api_key_here": true,
	"changeme":          true,
}

// IsPlaceholderAPIKey reports whether key is empty or a sample-config
// placeholder. Clients treat such keys as "not configured" rather than
// attempting calls with a doomed credential.
func IsPlaceholderAPIKey(key string) bool {
	return placeholderAPIKeys[strings.TrimSpace(key)]
}

// GenerationConfig holds generative model settings.
type GenerationConfig struct {
	Model      string        `yaml:"model"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    Duration `yaml:"timeout"`

	// APIKey is read from the environment, never from YAML.
	APIKey string `yaml:"-"`
}

// EmbeddingConfig holds embedding model settings.
type EmbeddingConfig struct {
	Model     string        `yaml:"model"`
	Dimension int           `yaml:"dimension"`
	Timeout   Duration `yaml:"timeout"`
}

// RetrievalConfig holds semantic retrieval settings.
type RetrievalConfig struct {
	TopK      int     `yaml:"top_k"`
	Threshold float64 `yaml:"threshold"`
}

// CacheConfig holds embedding cache settings.
type CacheConfig struct {
	Driver string        `yaml:"driver"` // none, memory or redis
	TTL    Duration `yaml:"ttl"`
	Redis  RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
// The config.env dotenv file is loaded first when present so the Gemini API
// key can live outside the YAML.
func Load(path string) (*Config, error) {
	// Missing config.env is fine, shell environment still applies.
	_ = godotenv.Load("config.env")

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			CreditCardsPath: "data/credit_cards.json",
			CreditsPath:     "data/credits.json",
			IntentsPath:     "config/intents.yml",
			KeywordsPath:    "config/keywords.yml",
		},
		Generation: GenerationConfig{
			Model:      "gemini-1.5-flash",
			MaxRetries: 2,
			Timeout:    Duration(45 * time.Second),
		},
		Embedding: EmbeddingConfig{
			Model:     "text-embedding-004",
			Dimension: 768,
			Timeout:   Duration(30 * time.Second),
		},
		Retrieval: RetrievalConfig{
			TopK:      3,
			Threshold: 0.3,
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    Duration(24 * time.Hour),
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// applyEnvOverrides reads well-known environment variables into the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_GEMINI_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if v := os.Getenv("BANKBOT_GENERATION_MODEL"); v != "" {
		cfg.Generation.Model = v
	}
	if v := os.Getenv("BANKBOT_EMBEDDING_MODEL"); v != "" {
		cfg.Embedding.Model = v
	}
	if v := os.Getenv("BANKBOT_CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("BANKBOT_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("BANKBOT_LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Data.CreditCardsPath == "" || c.Data.CreditsPath == "" {
		return fmt.Errorf("catalog data paths must not be empty")
	}

	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval top_k must be at least 1, got %d", c.Retrieval.TopK)
	}

	if c.Retrieval.Threshold < -1 || c.Retrieval.Threshold > 1 {
		return fmt.Errorf("retrieval threshold must be within [-1, 1], got %g", c.Retrieval.Threshold)
	}

	switch c.Cache.Driver {
	case "none", "memory", "redis":
	default:
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}

	if c.Generation.MaxRetries < 0 {
		return fmt.Errorf("generation max_retries must not be negative")
	}

	return nil
}
