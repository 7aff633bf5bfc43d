package domain

import "fmt"

// Config holds the scan settings read from .rulekit.yaml.
type Config struct {
	// Pattern is the filename pattern for rule documents.
	Pattern string `yaml:"pattern" json:"pattern"`
	// ExcludePaths lists directory names skipped during scanning.
	ExcludePaths []string `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
	// Concurrency bounds the validation worker pool.
	Concurrency int `yaml:"concurrency" json:"concurrency"`
	// TopErrors caps the recurring-error table in directory reports.
	TopErrors int `yaml:"top_errors" json:"top_errors"`
	// CacheSize bounds the LRU content cache (entries).
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// DefaultConfig returns the settings used when no .rulekit.yaml exists.
func DefaultConfig() Config {
	return Config{
		Pattern:     "*.mdc",
		Concurrency: 4,
		TopErrors:   5,
		CacheSize:   256,
	}
}

// Validate rejects settings that would break the scan loop.
func (c Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.TopErrors < 0 {
		return fmt.Errorf("top_errors must not be negative, got %d", c.TopErrors)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1, got %d", c.CacheSize)
	}
	return nil
}
