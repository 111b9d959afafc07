// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sifthq/sift/internal/config"
	"github.com/sifthq/sift/internal/ui"
)

var (
	// Global flags
	configPath  string
	catalogPath string

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sift",
	Short: "Sift - compile structured queries into Elasticsearch Query DSL",
	Long: `Sift compiles a normalized boolean/comparison query tree into the
Elasticsearch Query DSL, resolving cross-index joins through a catalog of
index links and injecting visibility filters at every join boundary.

Queries are supplied as JSON-encoded syntax trees; parsing the query language
itself happens upstream.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "path to catalog database (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON envelopes")
}

// resolvedCatalogPath returns the catalog path: flag > config > default.
func resolvedCatalogPath() string {
	if catalogPath != "" {
		return catalogPath
	}
	return cfg.CatalogPathOrDefault()
}
