package config

import (
	"fmt"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	UCM     UCMConfig     `mapstructure:"ucm" yaml:"ucm"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// UCMConfig contains content server transport settings
type UCMConfig struct {
	Timeout            time.Duration `mapstructure:"timeout" yaml:"timeout"`
	ConnectRetries     int           `mapstructure:"connect_retries" yaml:"connect_retries"`
	UserAgent          string        `mapstructure:"user_agent" yaml:"user_agent"`
	Proxy              string        `mapstructure:"proxy" yaml:"proxy"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify" yaml:"insecure_skip_verify"`
}

// OutputConfig contains run output settings
type OutputConfig struct {
	Progress bool   `mapstructure:"progress" yaml:"progress"`
	Report   string `mapstructure:"report" yaml:"report"`
	DryRun   bool   `mapstructure:"dry_run" yaml:"dry_run"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.UCM.Timeout < time.Second {
		c.UCM.Timeout = DefaultTimeout
	}
	if c.UCM.ConnectRetries < 0 {
		return fmt.Errorf("invalid ucm.connect_retries: %d", c.UCM.ConnectRetries)
	}
	if c.UCM.Proxy != "" && !strings.Contains(c.UCM.Proxy, "://") {
		return fmt.Errorf("invalid ucm.proxy: %q has no scheme", c.UCM.Proxy)
	}
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		c.Logging.Format = DefaultLogFormat
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	return nil
}
