package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ErrLoadConfig indicates a failure to read or parse the YAML configuration.
var ErrLoadConfig = errors.New("config load failed")

// ErrValidateConfig indicates that the loaded configuration is invalid.
var ErrValidateConfig = errors.New("configuration validation failed")

// Config represents the top-level YAML configuration file.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"  yaml:"store"`
	Backup BackupConfig `mapstructure:"backup" yaml:"backup"`
}

// StoreConfig points at the live dmpool datastore.
type StoreConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// BackupConfig contains backup and retention options.
type BackupConfig struct {
	Directory string        `mapstructure:"directory" yaml:"directory"`
	KeepLast  int           `mapstructure:"keep_last" yaml:"keep_last"`
	Interval  time.Duration `mapstructure:"interval"  yaml:"interval,omitempty"`
	Compress  bool          `mapstructure:"compress"  yaml:"compress,omitempty"`
}

// Load reads the configuration from the given YAML file using Viper
// and unmarshals into the Config struct.
func (c *Config) Load(path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("%w: read config %s: %v", ErrLoadConfig, path, err)
	}
	if err := v.UnmarshalExact(c); err != nil {
		return fmt.Errorf("%w: unmarshal config: %v", ErrLoadConfig, err)
	}

	return c.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Store.Path == "" {
		return fmt.Errorf("%w: store.path is required", ErrValidateConfig)
	}
	if c.Backup.Directory == "" {
		return fmt.Errorf("%w: backup.directory is required", ErrValidateConfig)
	}
	if c.Backup.KeepLast < 1 {
		return fmt.Errorf("%w: backup.keep_last must be at least 1", ErrValidateConfig)
	}
	return nil
}
