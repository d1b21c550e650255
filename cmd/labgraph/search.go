// Search command: list distinct matching capability tuples.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Query filter flags shared by search and recommend.
var (
	flagTest     string
	flagStandard string
	flagDomain   string
	flagLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search capabilities by test, standard, or domain",
	Long: `Search returns the distinct (lab, test, standard, domain) tuples
matching the filters, ordered by lab name then test name. At least one
of --test, --standard, or --domain is required.

Example:
  labgraph search --test "voltage withstand"
  labgraph search --standard "IEC 60068" --domain Environmental --json`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	for _, cmd := range []*cobra.Command{searchCmd, recommendCmd} {
		cmd.Flags().StringVar(&flagTest, "test", "", "test name substring")
		cmd.Flags().StringVar(&flagStandard, "standard", "", "standard code substring")
		cmd.Flags().StringVar(&flagDomain, "domain", "", "exact domain name")
		cmd.Flags().IntVar(&flagLimit, "limit", 0, "maximum results (default 50)")
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(cmd.Context(), queryFilter())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(results)
	}
	if len(results) == 0 {
		fmt.Println("no matching capabilities")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s\t%s\t%s\t%s\n", r.LabName, r.TestName, r.StandardCode, r.DomainName)
	}
	return nil
}
