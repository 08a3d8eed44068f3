package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "fib2048.yaml"

// SourceEmbedded is reported by Load when no config file was found.
const SourceEmbedded = "embedded"

// Load reads the configuration and reports where it came from.
// Search order: customPath -> ~/.fib2048/configs/fib2048.yaml -> ./configs/fib2048.yaml -> embedded default.
// Fields missing from a file keep their default values.
func Load(customPath string) (Config, string, error) {
	// Custom path errors are fatal; the user asked for that file
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), "", err
		}
		return cfg, customPath, nil
	}

	candidates := []string{filepath.Join("configs", fileName)}
	if p := userConfigPath(); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := loadFile(path)
		if err != nil {
			return Default(), "", err
		}
		return cfg, path, nil
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return Default(), SourceEmbedded, nil // Fallback to hardcoded if embed is broken
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the per-user config file path, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fib2048", "configs", fileName)
}
