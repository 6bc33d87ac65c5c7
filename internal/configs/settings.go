package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultKeyDir is used when no flag, environment variable or config
	// value names a key directory.
	DefaultKeyDir = "/opt/ejson/keys"

	// KeyDirEnv overrides the configured key directory.
	KeyDirEnv = "EJSON_KEYDIR"

	// ConfigPathEnv overrides the location of config.toml.
	ConfigPathEnv = "EJGO_CONFIG"
)

// Source names where a resolved setting came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// Settings are the effective values for one invocation.
type Settings struct {
	ConfigPath   string
	KeyDir       string
	KeyDirSource Source
	AuditLog     string
}

// ConfigPath returns the path of config.toml: $EJGO_CONFIG when set,
// otherwise ejgo/config.toml under the user config directory.
func ConfigPath() (string, error) {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("error getting config directory: %w", err)
	}
	return filepath.Join(configDir, "ejgo", "config.toml"), nil
}

// ResolveSettings loads the user config and works out the key directory.
// flagKeyDir wins over $EJSON_KEYDIR, which wins over the config file, which
// wins over DefaultKeyDir.
func ResolveSettings(flagKeyDir string) (*Settings, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	settings := &Settings{
		ConfigPath: path,
		AuditLog:   config.AuditLog,
	}

	switch {
	case flagKeyDir != "":
		settings.KeyDir, settings.KeyDirSource = flagKeyDir, SourceFlag
	case os.Getenv(KeyDirEnv) != "":
		settings.KeyDir, settings.KeyDirSource = os.Getenv(KeyDirEnv), SourceEnv
	case config.KeyDir != "":
		settings.KeyDir, settings.KeyDirSource = config.KeyDir, SourceConfig
	default:
		settings.KeyDir, settings.KeyDirSource = DefaultKeyDir, SourceDefault
	}

	return settings, nil
}
