// Package app holds the state shared by the cocatalog commands: settings,
// the central logger, the metrics registry and optional telemetry.
package app

import (
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/tphakala/cocatalog/internal/buildinfo"
	"github.com/tphakala/cocatalog/internal/catalog"
	"github.com/tphakala/cocatalog/internal/conf"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/observability/metrics"
	"github.com/tphakala/cocatalog/internal/report"
)

// Context holds the application state for one command invocation.
type Context struct {
	Build      *buildinfo.Context
	Viper      *viper.Viper
	ConfigFile string
	Settings   *conf.Settings
	Stdout     io.Writer

	central   *logger.CentralLogger
	log       logger.Logger
	registry  *prometheus.Registry
	metrics   *metrics.CatalogMetrics
	telemetry bool
}

// NewContext creates a Context reading configuration through v. build may
// be nil.
func NewContext(build *buildinfo.Context, v *viper.Viper) *Context {
	if v == nil {
		v = viper.New()
	}
	return &Context{
		Build:  build,
		Viper:  v,
		Stdout: os.Stdout,
	}
}

// Initialize loads settings and sets up logging, metrics and telemetry.
// It is called once, after flags are parsed.
func (c *Context) Initialize() error {
	settings, err := conf.LoadFrom(c.Viper, c.ConfigFile)
	if err != nil {
		return err
	}
	c.Settings = settings

	central, err := logger.NewCentralLogger(settings.LoggingConfig())
	if err != nil {
		return errors.New(err).
			Component("app").
			Category(errors.CategoryConfiguration).
			Context("operation", "setup_logging").
			Build()
	}
	c.central = central
	logger.SetGlobal(central)
	c.log = central.Module("app")

	c.registry = prometheus.NewRegistry()
	if c.metrics, err = metrics.NewCatalogMetrics(c.registry); err != nil {
		return err
	}

	if settings.Telemetry.Enabled {
		if err := c.setupTelemetry(); err != nil {
			c.log.Warn("telemetry disabled", logger.Error(err))
		}
	}
	return nil
}

// Logger returns the logger for module, falling back to the global logger
// before Initialize.
func (c *Context) Logger(module string) logger.Logger {
	if c.central == nil {
		return logger.Global().Module(module)
	}
	return c.central.Module(module)
}

// Metrics returns the catalog metrics collector, nil before Initialize.
func (c *Context) Metrics() *metrics.CatalogMetrics {
	return c.metrics
}

// OpenCatalog opens the catalog at path and passes the version gate. On an
// unsupported version the open catalog is still returned alongside the
// error so the caller can report the raw version.
func (c *Context) OpenCatalog(path string) (*catalog.Catalog, error) {
	opts := []catalog.Option{
		catalog.WithLogger(c.Logger("catalog")),
		catalog.WithMetrics(c.metrics),
	}
	if s := c.Settings; s != nil {
		opts = append(opts,
			catalog.WithFilename(s.Catalog.Filename),
			catalog.WithReadOnly(s.Catalog.ReadOnly),
			catalog.WithSlowQueryThreshold(s.Catalog.SlowQueryThreshold))
	}

	cat := catalog.New(path, opts...)
	if err := cat.Open(); err != nil {
		return nil, err
	}
	if err := cat.LoadVersion(); err != nil {
		if errors.Is(err, catalog.ErrUnsupportedVersion) {
			return cat, err
		}
		_ = cat.Close()
		return nil, err
	}
	return cat, nil
}

// Renderer returns the renderer for the configured output format.
func (c *Context) Renderer() (report.Renderer, error) {
	format := report.FormatTable
	if c.Settings != nil {
		f, err := report.ParseFormat(c.Settings.Output.Format)
		if err != nil {
			return nil, err
		}
		format = f
	}
	return report.NewRenderer(format)
}

// Shutdown writes the metrics textfile, flushes telemetry and closes the
// log file. It is safe to call before Initialize.
func (c *Context) Shutdown() error {
	var errs []error

	if c.Settings != nil && c.Settings.Metrics.Textfile != "" && c.metrics != nil {
		if err := c.metrics.WriteTextfile(c.Settings.Metrics.Textfile); err != nil {
			c.log.Warn("failed to write metrics textfile",
				logger.String("path", c.Settings.Metrics.Textfile),
				logger.Error(err))
			errs = append(errs, err)
		}
	}

	if c.telemetry {
		flushTelemetry()
	}

	if c.central != nil {
		errs = append(errs, c.central.Close())
	}
	return errors.Join(errs...)
}
