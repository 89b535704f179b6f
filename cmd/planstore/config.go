package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given.
const defaultConfigFile = "planstore.yaml"

// fileConfig mirrors the optional YAML config file. Flags override it.
type fileConfig struct {
	Adapter string `yaml:"adapter"`
	URI     string `yaml:"uri"`
	Schema  string `yaml:"schema"`
	Redis   struct {
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// loadConfig reads path, or the default config file when path is empty. A
// missing default file is not an error; a missing explicit file is.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
