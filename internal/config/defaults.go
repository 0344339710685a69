package config

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "./output",
		},
		Analysis: AnalysisConfig{
			TopPublishers: 10,
			TopAuthors:    10,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}
