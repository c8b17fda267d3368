package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/catalog/entities"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	setDefaultConfig(v)

	settings := &Settings{}
	require.NoError(t, v.Unmarshal(settings))
	require.NoError(t, ValidateSettings(settings))

	assert.False(t, settings.Debug)
	assert.Equal(t, entities.CatalogFilename, settings.Catalog.Filename)
	assert.True(t, settings.Catalog.ReadOnly)
	assert.Equal(t, 200*time.Millisecond, settings.Catalog.SlowQueryThreshold)
	assert.Equal(t, "info", settings.Logging.Level)
	assert.True(t, settings.Logging.Console)
	assert.Empty(t, settings.Logging.File)
	assert.Equal(t, "table", settings.Output.Format)
	assert.Empty(t, settings.Metrics.Textfile)
	assert.False(t, settings.Telemetry.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
debug: true
catalog:
  slowquerythreshold: 1s
logging:
  level: WARN
  file: /tmp/cocatalog.log
  modulelevels:
    catalog: trace
output:
  format: yaml
metrics:
  textfile: /var/lib/node_exporter/cocatalog.prom
`)

	settings, err := LoadFrom(viper.New(), path)
	require.NoError(t, err)

	assert.True(t, settings.Debug)
	assert.Equal(t, time.Second, settings.Catalog.SlowQueryThreshold)
	assert.Equal(t, "warn", settings.Logging.Level, "level is normalized")
	assert.Equal(t, "trace", settings.Logging.ModuleLevels["catalog"])
	assert.Equal(t, "yaml", settings.Output.Format)
	assert.Equal(t, "/var/lib/node_exporter/cocatalog.prom", settings.Metrics.Textfile)
	assert.Equal(t, entities.CatalogFilename, settings.Catalog.Filename, "unset keys keep defaults")
}

func TestLoadExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadFrom(viper.New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("COCATALOG_OUTPUT_FORMAT", "json")
	t.Setenv("COCATALOG_LOGGING_FILE", "/tmp/env.log")
	t.Setenv("COCATALOG_CATALOG_SLOWQUERYTHRESHOLD", "50ms")

	settings, err := LoadFrom(viper.New(), writeConfig(t, "output:\n  format: yaml\n"))
	require.NoError(t, err)

	assert.Equal(t, "json", settings.Output.Format)
	assert.Equal(t, "/tmp/env.log", settings.Logging.File)
	assert.Equal(t, 50*time.Millisecond, settings.Catalog.SlowQueryThreshold)
}

func TestInvalidEnvironmentValue(t *testing.T) {
	t.Setenv("COCATALOG_LOGGING_LEVEL", "verbose")

	_, err := LoadFrom(viper.New(), writeConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COCATALOG_LOGGING_LEVEL")
}

func TestValidateSettings(t *testing.T) {
	t.Parallel()

	valid := func() *Settings {
		s := &Settings{}
		s.Catalog.Filename = entities.CatalogFilename
		s.Logging.Level = "info"
		s.Output.Format = "table"
		return s
	}

	tests := []struct {
		name    string
		mutate  func(*Settings)
		wantErr string
	}{
		{"valid", func(*Settings) {}, ""},
		{"uppercase format", func(s *Settings) { s.Output.Format = "JSON" }, ""},
		{"unknown format", func(s *Settings) { s.Output.Format = "csv" }, "output.format"},
		{"unknown level", func(s *Settings) { s.Logging.Level = "loud" }, "logging.level"},
		{"unknown module level", func(s *Settings) { s.Logging.ModuleLevels = map[string]string{"catalog": "x"} }, "logging.modulelevels.catalog"},
		{"empty filename", func(s *Settings) { s.Catalog.Filename = "" }, "catalog.filename"},
		{"negative threshold", func(s *Settings) { s.Catalog.SlowQueryThreshold = -time.Second }, "catalog.slowquerythreshold"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := valid()
			tt.mutate(s)
			err := ValidateSettings(s)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
		})
	}
}

func TestLoggingConfig(t *testing.T) {
	t.Parallel()

	s := &Settings{}
	s.Logging.Level = "warn"
	s.Logging.Console = true
	s.Logging.File = "/tmp/cocatalog.log"

	cfg := s.LoggingConfig()
	assert.Equal(t, "warn", cfg.DefaultLevel)
	require.NotNil(t, cfg.FileOutput)
	assert.Equal(t, "/tmp/cocatalog.log", cfg.FileOutput.Path)

	s.Debug = true
	s.Logging.File = ""
	cfg = s.LoggingConfig()
	assert.Equal(t, string(logger.LogLevelDebug), cfg.DefaultLevel)
	assert.Equal(t, "debug", cfg.Console.Level)
	assert.Nil(t, cfg.FileOutput)
}

func TestDefaultConfigPaths(t *testing.T) {
	t.Parallel()

	paths := GetDefaultConfigPaths()
	require.NotEmpty(t, paths)
	assert.Equal(t, ".", paths[0])
	assert.Equal(t, filepath.Join(string(filepath.Separator), "etc", "cocatalog"), paths[len(paths)-1])
}
