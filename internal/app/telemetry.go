package app

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
)

const telemetryFlushTimeout = 2 * time.Second

// setupTelemetry initializes Sentry and installs the error reporter. It does
// nothing without a DSN.
func (c *Context) setupTelemetry() error {
	dsn := c.Settings.Telemetry.DSN
	if dsn == "" {
		c.log.Debug("telemetry enabled without a DSN, not reporting")
		return nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		SampleRate:       1.0,
		AttachStacktrace: false,
		ServerName:       "",
		Release:          c.Build.Release(),
	})
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}

	errors.SetTelemetryReporter(errors.NewSentryReporter(true))
	c.telemetry = true
	c.log.Info("telemetry enabled", logger.Bool("stacktraces", false))
	return nil
}

func flushTelemetry() {
	sentry.Flush(telemetryFlushTimeout)
}
