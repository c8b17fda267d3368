package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/logger"
)

// decodeLines parses JSON log lines written by NewSlogLogger.
func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var out []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line: %s", line)
		out = append(out, m)
	}
	return out
}

func TestSlogLoggerLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    logger.LogLevel
		wantMsgs []string
	}{
		{"trace", logger.LogLevelTrace, []string{"t", "d", "i", "w", "e"}},
		{"debug", logger.LogLevelDebug, []string{"d", "i", "w", "e"}},
		{"info", logger.LogLevelInfo, []string{"i", "w", "e"}},
		{"warn", logger.LogLevelWarn, []string{"w", "e"}},
		{"error", logger.LogLevelError, []string{"e"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &bytes.Buffer{}
			log := logger.NewSlogLogger(buf, tt.level, time.UTC)
			log.Trace("t")
			log.Debug("d")
			log.Info("i")
			log.Warn("w")
			log.Error("e")

			var got []string
			for _, line := range decodeLines(t, buf) {
				got = append(got, line["msg"].(string))
			}
			assert.Equal(t, tt.wantMsgs, got)
		})
	}
}

func TestModuleAndFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	base := logger.NewSlogLogger(buf, logger.LogLevelDebug, time.UTC)

	log := base.Module("catalog").Module("loader").With(logger.String("table", "ZIMAGE"))
	log.Info("rows decoded",
		logger.Int("rows", 3),
		logger.Int64("entity_id", 12),
		logger.Bool("cached", false),
		logger.Error(errors.New("boom")),
		logger.Duration("elapsed", 1500*time.Microsecond))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	line := lines[0]

	assert.Equal(t, "catalog.loader", line["module"])
	assert.Equal(t, "ZIMAGE", line["table"])
	assert.InDelta(t, 3, line["rows"], 0)
	assert.InDelta(t, 12, line["entity_id"], 0)
	assert.Equal(t, false, line["cached"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "1.5ms", line["elapsed"])
}

func TestWithContextAddsTraceID(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.NewSlogLogger(buf, logger.LogLevelInfo, nil)

	log.WithContext(logger.WithTraceID(context.Background(), "abc-123")).Info("traced")
	log.WithContext(context.Background()).Info("untraced")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "abc-123", lines[0]["trace_id"])
	assert.NotContains(t, lines[1], "trace_id")
}

func TestExplicitLogLevelRespectsThreshold(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.NewSlogLogger(buf, logger.LogLevelWarn, nil)
	log.Log(logger.LogLevelInfo, "dropped")
	log.Log(logger.LogLevelError, "kept")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["msg"])
}

func TestCentralLoggerFileOutput(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "cocatalog.log")
	cl, err := logger.NewCentralLogger(&logger.LoggingConfig{
		DefaultLevel: "debug",
		Timezone:     "UTC",
		Console:      &logger.ConsoleOutput{Enabled: false},
		FileOutput:   &logger.FileOutput{Enabled: true, Path: path},
		ModuleLevels: map[string]string{"report": "error"},
	})
	require.NoError(t, err)

	cl.Module("catalog").Debug("opened", logger.String("version", "Co12"))
	cl.Module("report").Info("suppressed")
	require.NoError(t, cl.Flush())
	require.NoError(t, cl.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := decodeLines(t, bytes.NewBuffer(data))
	require.Len(t, lines, 1)
	assert.Equal(t, "catalog", lines[0]["module"])
	assert.Equal(t, "DEBUG", lines[0]["level"])
	assert.Equal(t, "Co12", lines[0]["version"])
}

func TestCentralLoggerRejectsBadTimezone(t *testing.T) {
	t.Parallel()

	_, err := logger.NewCentralLogger(&logger.LoggingConfig{Timezone: "Mars/Olympus"})
	require.Error(t, err)

	_, err = logger.NewCentralLogger(nil)
	require.Error(t, err)
}

func TestValidLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.True(t, logger.ValidLevel(level), level)
	}
	assert.False(t, logger.ValidLevel("verbose"))
	assert.False(t, logger.ValidLevel(""))
}
