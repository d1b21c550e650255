// Tests search command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var testsCmd = &cobra.Command{
	Use:   "tests <name-substring>",
	Short: "Search tests by name and show how many labs perform each",
	Args:  cobra.ExactArgs(1),
	RunE:  runTests,
}

func runTests(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	matches, err := store.SearchTests(cmd.Context(), args[0], 0)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(matches)
	}
	if len(matches) == 0 {
		fmt.Println("no matching tests")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%s\tlabs=%d\n", m.TestName, m.LabCount)
	}
	return nil
}
