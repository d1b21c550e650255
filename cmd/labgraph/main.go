// Package main provides the labgraph CLI: the capability ingestion
// pipeline and the lab search and recommendation query surface.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// Exit codes: 0 success, 1 user error (bad arguments, missing filter,
// unknown lab), 2 system error (store or transaction failure).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes client errors from system failures.
func exitCode(err error) int {
	if errors.Is(err, types.ErrMissingFilter) ||
		errors.Is(err, types.ErrNotFound) ||
		errors.Is(err, types.ErrInvalidID) {
		return exitUserError
	}
	return exitSysError
}
