// Validate command: read-only integrity report.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report residual integrity violations without mutating anything",
	Long: `Validate counts null-coded standards, capability edges referencing
them, and genuine duplicate (lab, test, standard) combinations. All
counts are expected to be zero after a complete pipeline run; violations
are reported as warnings, never repaired here (see cleanup).`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := store.Validate(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}
	fmt.Printf("null-coded standards: %d (expected 0)\n", report.NullCodeStandards)
	fmt.Printf("edges to null-coded standards: %d (expected 0)\n", report.NullCodeEdges)
	fmt.Printf("duplicate edges: %d (expected 0)\n", len(report.DuplicateEdges))
	for _, d := range report.DuplicateEdges {
		fmt.Printf("  %s / %s / %s (count %d)\n", d.LabName, d.TestName, d.StandardCode, d.Count)
	}
	if report.Clean() {
		fmt.Println("all validation checks passed")
	}
	return nil
}
