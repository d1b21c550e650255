// Domains listing command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List domains with capability and lab counts",
	Args:  cobra.NoArgs,
	RunE:  runDomains,
}

func runDomains(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	infos, err := store.ListDomains(cmd.Context())
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(infos)
	}
	for _, d := range infos {
		fmt.Printf("%s\tcapabilities=%d\tlabs=%d\n", d.DomainName, d.TotalCapabilities, d.LabCount)
	}
	return nil
}
