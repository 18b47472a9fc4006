package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/twig-tracker/twig/internal/model"
)

// LoadConfig reads the config file, writing and returning the defaults on
// first use.
func LoadConfig(path string) (model.Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := model.DefaultConfig()
		if writeErr := SaveConfig(path, cfg); writeErr != nil {
			return cfg, writeErr
		}
		return cfg, nil
	}
	if err != nil {
		return model.DefaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	var cfg model.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.DefaultConfig(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = model.ViewTree
	}
	if cfg.Reportees == nil {
		cfg.Reportees = []string{}
	}
	return cfg, nil
}

// SaveConfig serializes the config and replaces the file atomically.
func SaveConfig(path string, cfg model.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("storage error marshalling config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}
