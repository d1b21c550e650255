// Cleanup command: run the integrity pass on its own.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Repair null-coded standards and duplicate capability edges",
	Long: `Cleanup runs the integrity pass in a single transaction: it ensures the
UNSPECIFIED sentinel standard exists, removes capability edges that would
duplicate an existing sentinel edge, keeps one null-coded edge per
(lab, test) pair, reassigns the survivors to the sentinel, and deletes
the null-coded standard rows. Idempotent and safe to run at any time.`,
	Args: cobra.NoArgs,
	RunE: runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Cleanup(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}
	fmt.Printf("cleanup: %d conflicting edges deleted, %d duplicates deleted, %d edges reassigned, %d standards deleted\n",
		result.ConflictingEdgesDeleted, result.DuplicateEdgesDeleted, result.EdgesReassigned, result.StandardsDeleted)
	return nil
}
