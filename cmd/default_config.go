package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blockalign/blockalign/align"
	"github.com/blockalign/blockalign/align/store"
)

// Config represents the full blockalign.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Cache   store.Config  `yaml:"cache"`
}

// ScoringConfig mirrors align.Scoring.
type ScoringConfig struct {
	Match    int `yaml:"match"`
	Mismatch int `yaml:"mismatch"`
	Gap      int `yaml:"gap"`
}

func (s ScoringConfig) Scoring() align.Scoring {
	return align.Scoring{Match: s.Match, Mismatch: s.Mismatch, Gap: s.Gap}
}

// DefaultConfig is used when no config file is given. Fields a config file
// leaves out keep these values.
func DefaultConfig() Config {
	s := align.DefaultScoring()
	return Config{
		Scoring: ScoringConfig{Match: s.Match, Mismatch: s.Mismatch, Gap: s.Gap},
		Cache: store.Config{
			Backend: store.BackendFile,
			Dir:     store.DefaultDir,
			Path:    store.DefaultSQLitePath,
		},
	}
}

// loadConfig parses a YAML config file over DefaultConfig.
// Uses strict field checking: typos must cause errors.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Scoring.Scoring().Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// readSequence returns value, or the contents of path when path is set.
// FASTA header lines (">...") and all whitespace are dropped from files.
func readSequence(value, path string) (string, error) {
	if path == "" {
		return value, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read sequence %s: %w", path, err)
	}
	var seq strings.Builder
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			continue
		}
		seq.WriteString(strings.Join(strings.Fields(line), ""))
	}
	return seq.String(), nil
}
