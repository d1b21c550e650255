// Deactivate command: soft-delete a lab.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deactivateCmd = &cobra.Command{
	Use:   "deactivate <lab-id>",
	Short: "Soft-delete a lab so it stops appearing in query results",
	Long: `Deactivate marks a lab as deleted. Its capability edges are kept but
excluded from search, recommend, and listing output. Re-ingesting a file
for the lab reactivates it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDeactivate,
}

func runDeactivate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Labs.SoftDelete(cmd.Context(), args[0]); err != nil {
		return err
	}
	if !flagJSON {
		fmt.Printf("lab %s deactivated\n", args[0])
		return nil
	}
	return printJSON(map[string]string{"lab_id": args[0], "status": "deactivated"})
}
