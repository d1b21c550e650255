// Recommend command: rank labs against the query filters.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank labs by relevance to the query",
	Long: `Recommend aggregates matching capabilities per lab and ranks labs by
relevance. A matching test counts ten points, a matching standard five,
and a matching domain one. Each result includes up to five sample tests
and standards drawn from the lab's matching capabilities.

Example:
  labgraph recommend --domain Safety
  labgraph recommend --test EMC --limit 10 --json`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func runRecommend(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Recommend(cmd.Context(), queryFilter())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(recs)
	}
	if len(recs) == 0 {
		fmt.Println("no labs matched the query")
		return nil
	}
	for i, r := range recs {
		fmt.Printf("%d. %s (relevance %d)\n", i+1, r.LabName, r.RelevanceScore)
		fmt.Printf("   tests=%d standards=%d domains=%d\n",
			r.MatchingTests, r.MatchingStandards, r.MatchingDomains)
		if len(r.SampleTests) > 0 {
			fmt.Printf("   sample tests: %v\n", r.SampleTests)
		}
		if len(r.SampleStandards) > 0 {
			fmt.Printf("   sample standards: %v\n", r.SampleStandards)
		}
	}
	return nil
}
