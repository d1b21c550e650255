package types

import "errors"

// Config holds the directories and files the pipeline operates on.
type Config struct {
	// DataDir holds the sqlite database file.
	DataDir string `json:"data_dir" yaml:"data_dir"`
	// RawDir holds the source spreadsheets, one CSV per lab.
	RawDir string `json:"raw_dir" yaml:"raw_dir"`
	// RulesFile is the optional YAML domain rule file. Empty means the
	// built-in default rules.
	RulesFile string `json:"rules_file" yaml:"rules_file"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data_dir must not be empty")
	ErrRawDirEmpty  = errors.New("raw_dir must not be empty")
)

// Validate checks that the Config is well-formed. RulesFile may be empty;
// the other fields are required. Returns a sentinel error on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	if c.RawDir == "" {
		return ErrRawDirEmpty
	}
	return nil
}
