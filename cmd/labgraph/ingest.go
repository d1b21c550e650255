// Ingest command: run the full capability ingestion pipeline.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labgraph/internal/pipeline"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest source spreadsheets into the capability graph",
	Long: `Ingest runs the full pipeline over every CSV in the raw directory:

  1. integrity cleanup (repairs null-coded standards and duplicate edges)
  2. per file: header normalization, domain classification, entity
     resolution, and capability edge building
  3. integrity cleanup again
  4. read-only validation

Files missing required columns are skipped whole and logged. The run is
idempotent: re-ingesting the same files creates no new entities or edges.

Example:
  labgraph ingest --raw-dir data/raw
  labgraph ingest --rules config/domain_rules.yaml --json`,
	Args: cobra.NoArgs,
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	classifier, err := newClassifier()
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Store:      store,
		Classifier: classifier,
		RawDir:     cfg.RawDir,
		Log:        log,
	}

	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}
	report.Render(os.Stdout)
	return nil
}
