// Config loading for the labgraph CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/labgraph/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDataDir   = "data_dir"
	cfgKeyRawDir    = "raw_dir"
	cfgKeyRulesFile = "rules_file"

	defaultConfigDirName = ".labgraph"
	defaultDataDir       = ".labgraph-db"
	defaultRawDir        = "data/raw"

	configDirEnv = "LABGRAPH_CONFIG_DIR"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# labgraph CLI configuration

# Directory holding the capability store
data_dir: .labgraph-db

# Directory of source CSVs, one file per lab (file stem = lab name)
raw_dir: data/raw

# Optional YAML domain rule file; empty means the built-in rules
# rules_file:
`

// resolveConfigDir returns the configuration directory:
// --config-dir flag > LABGRAPH_CONFIG_DIR env > $(CWD)/.labgraph.
func resolveConfigDir() (string, error) {
	if flagConfigDir != "" {
		return flagConfigDir, nil
	}
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolving working directory: %w", err)
	}
	return filepath.Join(cwd, defaultConfigDirName), nil
}

// loadConfig reads config.yaml from the config directory using Viper,
// creating the directory and a default config.yaml on first run. A
// missing config.yaml is not an error.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyDataDir, defaultDataDir)
	v.SetDefault(cfgKeyRawDir, defaultRawDir)
	v.SetDefault(cfgKeyRulesFile, "")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return types.Config{
		DataDir:   v.GetString(cfgKeyDataDir),
		RawDir:    v.GetString(cfgKeyRawDir),
		RulesFile: v.GetString(cfgKeyRulesFile),
	}, nil
}

// ensureDefaultConfigFile creates a default config.yaml if it does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
