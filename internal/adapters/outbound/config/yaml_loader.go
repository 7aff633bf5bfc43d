package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rulekit/rulekit/internal/domain"
)

const fileName = ".rulekit.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .rulekit.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .rulekit.yaml from root. A missing file yields the default
// configuration; explicit values override defaults field by field.
func (l *YAMLLoader) Load(root string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	cfg := domain.Config{}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	cfg = mergeDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return cfg, nil
}

// mergeDefaults fills zero-valued fields from the default config.
func mergeDefaults(cfg domain.Config) domain.Config {
	defaults := domain.DefaultConfig()
	if cfg.Pattern == "" {
		cfg.Pattern = defaults.Pattern
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaults.Concurrency
	}
	if cfg.TopErrors == 0 {
		cfg.TopErrors = defaults.TopErrors
	}
	if cfg.CacheSize == 0 {
		cfg.CacheSize = defaults.CacheSize
	}
	return cfg
}
