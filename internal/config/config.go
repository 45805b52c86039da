package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// CustomPattern defines a user-supplied regex pattern for the custom
// entity kind.
type CustomPattern struct {
	Name       string `yaml:"name"`
	Pattern    string `yaml:"pattern"`
	Confidence int    `yaml:"confidence"`
}

// RecognizerConfig holds recognizer-related settings.
type RecognizerConfig struct {
	CustomNames    []string        `yaml:"custom_names"`
	CustomPatterns []CustomPattern `yaml:"custom_patterns"`
	Allowlist      []string        `yaml:"allowlist"`
	MinConfidence  int             `yaml:"min_confidence"`
}

// LoggingConfig holds logging-related settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Config is the top-level sentinel configuration.
type Config struct {
	Recognizer RecognizerConfig `yaml:"recognizer"`
	Logging    LoggingConfig    `yaml:"logging"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads a YAML configuration file from path and returns a Config.
// Missing optional fields are filled from DefaultConfig.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every custom pattern and allowlist entry compiles
// as a regex, that min_confidence is in range, and that the log level is
// recognized.
func (c *Config) Validate() error {
	for i, cp := range c.Recognizer.CustomPatterns {
		if _, err := regexp.Compile(cp.Pattern); err != nil {
			return fmt.Errorf("config: custom_patterns[%d] (%s): invalid regex: %w", i, cp.Name, err)
		}
	}

	for i, pattern := range c.Recognizer.Allowlist {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("config: allowlist[%d]: invalid regex: %w", i, err)
		}
	}

	if c.Recognizer.MinConfidence < 0 || c.Recognizer.MinConfidence > 100 {
		return fmt.Errorf("config: min_confidence must be 0-100, got %d", c.Recognizer.MinConfidence)
	}

	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("config: unknown log level %q (want debug|info|warn|error)", c.Logging.Level)
	}

	return nil
}
