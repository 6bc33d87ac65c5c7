package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Config is the user configuration stored in config.toml.
type Config struct {
	// KeyDir is the directory private keys are read from and written to.
	KeyDir string `toml:"keydir,omitempty"`

	// AuditLog, when set, is the JSON lines file operations are recorded in.
	AuditLog string `toml:"audit_log,omitempty"`
}

// LoadConfig loads the configuration at path. A missing file yields an empty
// Config.
func LoadConfig(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}

	if err := LoadTOML(path, config); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig writes config to path, creating its directory if needed.
func SaveConfig(path string, config *Config) error {
	if err := SaveTOML(path, config); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}
	return nil
}
