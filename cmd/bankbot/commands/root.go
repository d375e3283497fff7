package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fibank-ai/bankbot/internal/config"
	"github.com/fibank-ai/bankbot/internal/observability"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg    *config.Config
	logger *observability.Logger
)

var rootCmd = &cobra.Command{
	Use:   "bankbot",
	Short: "Bilingual banking assistant for the Fibank product catalog",
	Long: `Bankbot answers questions about Fibank credit cards and loans, in
Bulgarian or English. Replies come from keyword lookups over the product
catalog, semantic similarity search, or the Gemini API when configured.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		if noColor {
			color.NoColor = true
		}

		level := cfg.Observability.LogLevel
		if verbose {
			level = "debug"
		}

		logger = observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      cfg.Observability.LogFormat,
			ServiceName: "bankbot",
		})

		return nil
	},
}

// defaultConfigFile returns config.yml when it exists in the working
// directory, so the shipped config is picked up without a flag.
func defaultConfigFile() string {
	if _, err := os.Stat("config.yml"); err == nil {
		return "config.yml"
	}
	return ""
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigFile(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
