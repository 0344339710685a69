package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const configDir = ".kindle-analyzer"

// Load merges configuration from the global and project files over the
// defaults. Missing files are fine; a file that exists but will not parse is
// an error.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		if err := loadFile(filepath.Join(home, configDir, "config.yaml"), cfg); err != nil {
			return nil, err
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		if err := loadFile(filepath.Join(cwd, configDir, "config.yaml"), cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(cfg)
}
