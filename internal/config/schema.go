// Package config loads layered yaml configuration: built-in defaults, then
// the global file under the home directory, then the project file in the
// working directory. Command-line flags override all of it.
package config

// Config is the full kindle-analyzer configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Charts   ChartsConfig   `yaml:"charts" mapstructure:"charts"`
	Serve    ServeConfig    `yaml:"serve" mapstructure:"serve"`
}

// DatabaseConfig locates the source database.
type DatabaseConfig struct {
	// Path to BookData.sqlite; empty means probe the default locations.
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls where reports land.
type OutputConfig struct {
	Dir string `yaml:"dir" mapstructure:"dir"`
}

// AnalysisConfig tunes the aggregations.
type AnalysisConfig struct {
	TopPublishers int `yaml:"top_publishers" mapstructure:"top_publishers"`
	TopAuthors    int `yaml:"top_authors" mapstructure:"top_authors"`
}

// ChartsConfig tunes chart rendering.
type ChartsConfig struct {
	// FontPath names a TTF/OTF file for chart text; needed for CJK titles.
	FontPath string `yaml:"font_path" mapstructure:"font_path"`
}

// ServeConfig configures the JSON API server.
type ServeConfig struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
