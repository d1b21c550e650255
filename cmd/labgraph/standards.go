// Standards search command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var standardsCmd = &cobra.Command{
	Use:   "standards <code-substring>",
	Short: "Search standards by code and show how many labs cover each",
	Args:  cobra.ExactArgs(1),
	RunE:  runStandards,
}

func runStandards(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	matches, err := store.SearchStandards(cmd.Context(), args[0], 0)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(matches)
	}
	if len(matches) == 0 {
		fmt.Println("no matching standards")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s\t%s\tlabs=%d\n", m.StandardCode, m.FullCode, m.LabCount)
	}
	return nil
}
