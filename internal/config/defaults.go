package config

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Recognizer: RecognizerConfig{
			MinConfidence: 0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
