package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fibank-ai/bankbot/internal/cache"
	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/chat"
	"github.com/fibank-ai/bankbot/internal/config"
	"github.com/fibank-ai/bankbot/internal/embedding"
	"github.com/fibank-ai/bankbot/internal/generation"
	"github.com/fibank-ai/bankbot/internal/intent"
	"github.com/fibank-ai/bankbot/internal/language"
	"github.com/fibank-ai/bankbot/internal/respond"
	"github.com/fibank-ai/bankbot/internal/retrieval"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		bot, cleanup, err := buildBot(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		loop := chat.NewLoop(bot, os.Stdin, os.Stdout)
		return loop.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

// buildBot wires the full pipeline. The catalog is the only hard
// requirement: AI, embeddings and Redis all degrade with a warning.
func buildBot(ctx context.Context) (*chat.Bot, func(), error) {
	cat, err := catalog.Load(cfg.Data.CreditCardsPath, cfg.Data.CreditsPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Int("products", cat.Len()).Msg("catalog loaded")

	intents, err := config.LoadIntentPatterns(cfg.Data.IntentsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("intents config unusable, using built-in patterns")
		intents = config.DefaultIntentPatterns()
	}

	keywords, err := config.LoadKeywords(cfg.Data.KeywordsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("keywords config unusable, using built-in keywords")
		keywords = config.DefaultKeywords()
	}

	cacheClient := newCacheClient()

	var closers []func()
	closers = append(closers, func() { _ = cacheClient.Close() })

	embedder := newEmbedder(ctx, &closers)

	generator, err := generation.NewClient(ctx, generation.Config{
		APIKey:  cfg.Generation.APIKey,
		Model:   cfg.Generation.Model,
		Timeout: cfg.Generation.Timeout.Std(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("generation client unavailable, running in fallback mode")
	} else {
		closers = append(closers, func() { _ = generator.Close() })
		if generator.Available() {
			logger.Info().Str("model", generator.Model()).Msg("generation configured")
		} else {
			logger.Warn().Msg("no Gemini API key, running in fallback mode")
		}
	}

	retriever := retrieval.NewRetriever(cat, embedder, cacheClient, retrieval.Config{
		TopK:      cfg.Retrieval.TopK,
		Threshold: cfg.Retrieval.Threshold,
		CacheTTL:  cfg.Cache.TTL.Std(),
	}, logger)

	opts := chat.Options{
		Catalog:    cat,
		Detector:   language.NewDetector(logger),
		Classifier: intent.NewClassifier(intents),
		Retriever:  retriever,
		Composer:   respond.NewComposer(logger),
		Keywords:   keywords,
		MaxRetries: cfg.Generation.MaxRetries,
		Logger:     logger,
	}
	if generator != nil {
		opts.Generator = generator
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}

	return chat.NewBot(opts), cleanup, nil
}

func newCacheClient() cache.Client {
	switch cfg.Cache.Driver {
	case "none":
		return cache.NewNopClient()
	case "redis":
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, falling back to memory cache")
			return cache.NewMemoryClient(0)
		}
		logger.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("redis cache connected")
		return client
	default:
		return cache.NewMemoryClient(0)
	}
}

func newEmbedder(ctx context.Context, closers *[]func()) embedding.Embedder {
	client, err := embedding.NewClient(ctx, embedding.Config{
		APIKey:    cfg.Generation.APIKey,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout.Std(),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("embedding client unavailable, semantic search disabled")
		return embedding.Disabled{}
	}

	*closers = append(*closers, func() { _ = client.Close() })
	return client
}
