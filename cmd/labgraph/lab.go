// Lab detail command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var labCmd = &cobra.Command{
	Use:   "lab <lab-id>",
	Short: "Show a lab's capabilities grouped by domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runLab,
}

func runLab(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	details, err := store.LabDetails(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(details)
	}
	fmt.Printf("%s (%s)\n", details.Lab.LabName, details.Lab.LabID)
	fmt.Printf("capabilities: %d\n", details.TotalCapabilities)
	for _, dc := range details.DomainSummary {
		fmt.Printf("  %s: %d\n", dc.DomainName, dc.CapabilityCount)
	}
	for _, c := range details.Capabilities {
		fmt.Printf("%s\t%s\t%s\n", c.DomainName, c.TestName, c.StandardCode)
	}
	return nil
}
