// Root command for the labgraph CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagRawDir    string
	flagRules     string
	flagJSON      bool
)

// cfg is the effective configuration, resolved by PersistentPreRunE so
// every subcommand can use it.
var cfg types.Config

var rootCmd = &cobra.Command{
	Use:   "labgraph",
	Short: "labgraph ingests lab capability spreadsheets and recommends labs",
	Long: `labgraph turns heterogeneous lab capability spreadsheets into a
normalized capability graph of (lab, test, standard, domain) facts in a
local store, and answers search and ranking queries against it.

The ingest command runs the full pipeline: schema normalization, domain
classification, entity resolution, capability building, and an integrity
cleanup before and after. Ingestion is idempotent; re-running it over the
same or grown source data never duplicates entities or edges.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		// Flag > config > default precedence.
		cfg = loaded
		if flagDataDir != "" {
			cfg.DataDir = flagDataDir
		}
		if flagRawDir != "" {
			cfg.RawDir = flagRawDir
		}
		if flagRules != "" {
			cfg.RulesFile = flagRules
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: $(CWD)/.labgraph)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding the store")
	rootCmd.PersistentFlags().StringVar(&flagRawDir, "raw-dir", "", "directory of source CSVs, one per lab")
	rootCmd.PersistentFlags().StringVar(&flagRules, "rules", "", "YAML domain rule file (default: built-in rules)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(labCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(standardsCmd)
}
