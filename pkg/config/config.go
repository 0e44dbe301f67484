// Package config loads the recognized engine options from TOML or YAML
// files. Options are always threaded into the engine as parameters; nothing
// here is a global.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/riskops/riskcheck/pkg/analyzer"
	"github.com/riskops/riskcheck/pkg/incident"
)

// Config mirrors the on-disk options file.
type Config struct {
	// Percentile is the high-risk classification cutoff (0-100).
	Percentile float64 `toml:"percentile" yaml:"percentile"`
	// RootCauseLimit caps the root-cause ranking for display.
	RootCauseLimit int `toml:"root_cause_limit" yaml:"root_cause_limit"`
	// SeverityWeights overrides the severity weight table. Partial tables
	// are rejected at validation time.
	SeverityWeights map[string]float64 `toml:"severity_weights" yaml:"severity_weights"`
}

// Default returns a config equivalent to the engine defaults.
func Default() Config {
	weights := make(map[string]float64)
	for level, w := range incident.DefaultWeights() {
		weights[string(level)] = w
	}
	return Config{
		Percentile:      analyzer.DefaultPercentile,
		RootCauseLimit:  analyzer.DefaultRootCauseLimit,
		SeverityWeights: weights,
	}
}

// Load reads an options file, chosen by extension (.toml, .yaml, .yml).
// Unset fields keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("unsupported config format %q (want .toml, .yaml, or .yml)", filepath.Ext(path))
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Options converts the config into engine options, validating the weight
// table covers the full severity set.
func (c Config) Options() (analyzer.Options, error) {
	opts := analyzer.Options{
		Percentile:     c.Percentile,
		RootCauseLimit: c.RootCauseLimit,
		Weights:        incident.DefaultWeights(),
	}
	if len(c.SeverityWeights) > 0 {
		weights := make(incident.Weights, len(c.SeverityWeights))
		for level, w := range c.SeverityWeights {
			sev := incident.Severity(level)
			if !sev.Valid() {
				return analyzer.Options{}, fmt.Errorf("severity_weights: unknown severity %q", level)
			}
			weights[sev] = w
		}
		if err := weights.Validate(); err != nil {
			return analyzer.Options{}, err
		}
		opts.Weights = weights
	}
	return opts, nil
}
