// Normalize command: write cleaned CSVs without touching the store.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/labgraph/internal/normalize"
)

var flagOutDir string

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize source spreadsheets into cleaned CSVs",
	Long: `Normalize reads every CSV in the raw directory, maps its header to the
canonical column set, attaches the lab name from the file stem, and
writes the cleaned file to the output directory. Files missing required
columns are skipped and logged. The store is not touched; this is a dry
inspection of what ingest would consume.`,
	Args: cobra.NoArgs,
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().StringVar(&flagOutDir, "out", "data/cleaned", "output directory for cleaned CSVs")
}

func runNormalize(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := ensureDir(flagOutDir); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(cfg.RawDir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list %s: %w", cfg.RawDir, err)
	}
	sort.Strings(paths)

	var written, skipped int
	for _, path := range paths {
		name := filepath.Base(path)
		ds, err := normalize.LoadFile(path)
		if err != nil {
			log.Warn("skipping file", zap.String("file", name), zap.Error(err))
			skipped++
			continue
		}

		out, err := os.Create(filepath.Join(flagOutDir, name))
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err := ds.WriteCSV(out); err != nil {
			out.Close()
			return fmt.Errorf("write %s: %w", name, err)
		}
		if err := out.Close(); err != nil {
			return fmt.Errorf("close %s: %w", name, err)
		}
		log.Info("file normalized", zap.String("file", name), zap.Int("rows", len(ds.Rows)))
		written++
	}

	fmt.Printf("normalized %d files (%d skipped) into %s\n", written, skipped, flagOutDir)
	return nil
}
