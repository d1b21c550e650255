// Shared helpers for labgraph CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/labgraph/internal/classify"
	"github.com/mesh-intelligence/labgraph/internal/sqlite"
	"github.com/mesh-intelligence/labgraph/pkg/types"
)

// openStore opens the capability store at the configured data directory.
// The caller must defer store.Close().
func openStore() (*sqlite.Store, error) {
	store, err := sqlite.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

// newClassifier builds the classifier from the configured rule file, or
// the built-in rules when none is configured.
func newClassifier() (*classify.Classifier, error) {
	rules, err := classify.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	return classify.New(rules), nil
}

// newLogger builds the CLI logger; structured JSON when --json is set,
// console output otherwise. Logs go to stderr so stdout stays parseable.
func newLogger() (*zap.Logger, error) {
	encoding := "console"
	if flagJSON {
		encoding = "json"
	}
	lcfg := zap.NewProductionConfig()
	lcfg.Encoding = encoding
	lcfg.OutputPaths = []string{"stderr"}
	lcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return lcfg.Build()
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// queryFilter assembles the search/recommend filter from the query flags.
func queryFilter() types.Filter {
	return types.Filter{
		TestName: flagTest,
		Standard: flagStandard,
		Domain:   flagDomain,
		Limit:    flagLimit,
	}
}

// ensureDir creates dir if needed.
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}
