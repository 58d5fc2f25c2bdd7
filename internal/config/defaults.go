package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// UCM defaults. Connect retries are off unless configured.
	DefaultTimeout        = 30 * time.Second
	DefaultConnectRetries = 0

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"

	// EnvPrefix is the prefix of environment overrides (UCMPURGE_UCM_TIMEOUT, ...)
	EnvPrefix = "UCMPURGE"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ucmpurge"
	}
	return filepath.Join(home, ".ucmpurge")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		UCM: UCMConfig{
			Timeout:        DefaultTimeout,
			ConnectRetries: DefaultConnectRetries,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
