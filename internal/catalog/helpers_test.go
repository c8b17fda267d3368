package catalog

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/observability/metrics"
	"github.com/tphakala/cocatalog/internal/testutil"
)

// session bundles an open catalog with what tests inspect around it.
type session struct {
	*Catalog
	fixture  *testutil.Fixture
	logs     *bytes.Buffer
	registry *prometheus.Registry
}

func newSession(t *testing.T, opts ...testutil.FixtureOption) *session {
	t.Helper()

	f := testutil.NewCatalogFixture(t, opts...)
	logs := &bytes.Buffer{}
	reg := prometheus.NewRegistry()
	m, err := metrics.NewCatalogMetrics(reg)
	require.NoError(t, err)

	c := New(f.Dir,
		WithLogger(logger.NewSlogLogger(logs, logger.LogLevelDebug, nil)),
		WithMetrics(m))
	require.NoError(t, c.Open())
	t.Cleanup(func() { require.NoError(t, c.Close()) })

	return &session{Catalog: c, fixture: f, logs: logs, registry: reg}
}

// loadedSession is newSession followed by a successful LoadVersion.
func loadedSession(t *testing.T, opts ...testutil.FixtureOption) *session {
	t.Helper()
	s := newSession(t, opts...)
	require.NoError(t, s.LoadVersion())
	return s
}

// metricValue sums the samples of a counter or gauge family whose labels
// include want.
func (s *session) metricValue(t *testing.T, name string, want map[string]string) float64 {
	t.Helper()

	families, err := s.registry.Gather()
	require.NoError(t, err)

	var total float64
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metric:
		for _, m := range family.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metric
				}
			}
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			}
		}
	}
	return total
}

func ids(values ...int64) []ID {
	out := make([]ID, len(values))
	for i, v := range values {
		out[i] = ID(v)
	}
	return out
}
