package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileData is the .ce-intake.yaml structure.
type configFileData struct {
	Model           string `yaml:"model,omitempty"`
	ReasoningEffort string `yaml:"reasoning_effort,omitempty"`
	Addr            string `yaml:"addr,omitempty"`
	MaxTokens       int    `yaml:"max_tokens,omitempty"`
}

// findConfigFile resolves the config path: explicit flag, then
// .ce-intake.yaml in the working directory, then in the home directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(".ce-intake.yaml"); err == nil {
		return ".ce-intake.yaml"
	}
	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".ce-intake.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}
	return ""
}

// loadConfigFile reads and parses a config file. A missing path returns an
// empty config.
func loadConfigFile(path string) (configFileData, error) {
	var cfg configFileData
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ce-intake.yaml"
	}
	return filepath.Join(home, ".ce-intake.yaml")
}
