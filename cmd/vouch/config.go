package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// config mirrors the YAML config file. Every field has a flag
// counterpart; flags win when both are set.
type config struct {
	CustomAssertions string   `yaml:"custom_assertions"`
	Include          []string `yaml:"include"`
	Exclude          []string `yaml:"exclude"`
	Jobs             int      `yaml:"jobs"`
}

// loadConfig reads a YAML config file. An empty path returns the zero
// config; unknown keys are rejected so typos surface immediately.
func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
