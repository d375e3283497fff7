package commands

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fibank-ai/bankbot/internal/catalog"
	"github.com/fibank-ai/bankbot/internal/config"
	"github.com/fibank-ai/bankbot/internal/generation"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show catalog and collaborator status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := color.New(color.FgGreen).SprintFunc()
		warn := color.New(color.FgYellow).SprintFunc()

		cat, err := catalog.Load(cfg.Data.CreditCardsPath, cfg.Data.CreditsPath)
		if err != nil {
			return err
		}
		fmt.Printf("%s catalog: %d products (%d card brands, %d loan categories)\n",
			ok("[OK]"), cat.Len(), len(cat.Cards()), len(cat.Loans()))

		if _, err := config.LoadIntentPatterns(cfg.Data.IntentsPath); err != nil {
			fmt.Printf("%s intents: %v (built-in patterns in use)\n", warn("[!!]"), err)
		} else {
			fmt.Printf("%s intents: %s\n", ok("[OK]"), cfg.Data.IntentsPath)
		}

		if _, err := config.LoadKeywords(cfg.Data.KeywordsPath); err != nil {
			fmt.Printf("%s keywords: %v (built-in keywords in use)\n", warn("[!!]"), err)
		} else {
			fmt.Printf("%s keywords: %s\n", ok("[OK]"), cfg.Data.KeywordsPath)
		}

		generator, err := generation.NewClient(context.Background(), generation.Config{
			APIKey: cfg.Generation.APIKey,
			Model:  cfg.Generation.Model,
		})
		switch {
		case err != nil:
			fmt.Printf("%s generation: %v\n", warn("[!!]"), err)
		case generator.Available():
			fmt.Printf("%s generation: %s\n", ok("[OK]"), generator.Model())
			_ = generator.Close()
		default:
			fmt.Printf("%s generation: no API key, fallback mode\n", warn("[!!]"))
		}

		fmt.Printf("%s embedding model: %s (dimension %d)\n", ok("[OK]"), cfg.Embedding.Model, cfg.Embedding.Dimension)
		fmt.Printf("%s cache driver: %s\n", ok("[OK]"), cfg.Cache.Driver)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
