// Package conf loads cocatalog settings from config.yaml, the environment
// and command line flags.
package conf

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
)

// Settings holds every configurable value.
type Settings struct {
	Debug bool // true to enable debug logging

	Catalog struct {
		Filename           string        // store name looked up inside a catalog directory
		ReadOnly           bool          // open the store read-only
		SlowQueryThreshold time.Duration // statements slower than this are logged as warnings
	}

	Logging struct {
		Level        string            // default level: trace, debug, info, warn, error
		Console      bool              // log to stderr
		File         string            // JSON log file, empty to disable
		Timezone     string            // "Local", "UTC" or an IANA name
		ModuleLevels map[string]string // per-module overrides, e.g. catalog: trace
	}

	Output struct {
		Format string // table, json or yaml
	}

	Metrics struct {
		Textfile string // write prometheus textfile here after each command, empty to disable
	}

	Telemetry struct {
		Enabled bool   // report errors to Sentry
		DSN     string // Sentry DSN
	}
}

// LoadFrom reads settings through v. configFile overrides the search path
// and must exist when set.
func LoadFrom(v *viper.Viper, configFile string) (*Settings, error) {
	if err := initViper(v, configFile); err != nil {
		return nil, err
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Context("operation", "unmarshal").
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// initViper sets defaults and the environment binding, then reads the
// config file. A missing config file is not an error.
func initViper(v *viper.Viper, configFile string) error {
	setDefaultConfig(v)
	if err := configureEnvironmentVariables(v); err != nil {
		return errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			Context("operation", "bind-env").
			Build()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, path := range GetDefaultConfigPaths() {
			v.AddConfigPath(path)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.New(err).
			Component("configuration").
			Category(errors.CategoryConfiguration).
			FileContext(configFile).
			Context("operation", "read-config").
			Build()
	}
	return nil
}

// GetDefaultConfigPaths returns where config.yaml is looked up, in order.
func GetDefaultConfigPaths() []string {
	paths := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cocatalog"))
	}
	return append(paths, filepath.Join(string(filepath.Separator), "etc", "cocatalog"))
}

// LoggingConfig converts the logging settings for logger.NewCentralLogger.
func (s *Settings) LoggingConfig() *logger.LoggingConfig {
	level := s.Logging.Level
	if s.Debug {
		level = string(logger.LogLevelDebug)
	}

	cfg := &logger.LoggingConfig{
		DefaultLevel: level,
		Timezone:     s.Logging.Timezone,
		Console:      &logger.ConsoleOutput{Enabled: s.Logging.Console, Level: level},
		ModuleLevels: s.Logging.ModuleLevels,
	}
	if s.Logging.File != "" {
		cfg.FileOutput = &logger.FileOutput{Enabled: true, Path: s.Logging.File, Level: level}
	}
	return cfg
}
