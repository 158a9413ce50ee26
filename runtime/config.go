package runtime

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config carries the tool settings read from the optional YAML config file.
type Config struct {
	RCFile      string `yaml:"rc_file"`
	HistoryFile string `yaml:"history_file"`
	Prompt      string `yaml:"prompt"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	cfg := Config{
		RCFile:      ".fcalcrc",
		HistoryFile: ".fcalc_history",
		Prompt:      "fcalc> ",
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		cfg.RCFile = filepath.Join(home, ".fcalcrc")
		cfg.HistoryFile = filepath.Join(home, ".fcalc_history")
	}
	return cfg
}

// DefaultConfigPath locates the config file under the user config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "fcalc", "config.yaml")
}

// LoadConfig reads settings from path, falling back to defaults for any
// field the file leaves unset. A missing file yields the defaults; malformed
// YAML is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
