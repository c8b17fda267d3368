package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/testutil"
)

func quietCatalog(path string, opts ...Option) *Catalog {
	return New(path, append([]Option{WithLogger(logger.NewSlogLogger(nil, logger.LogLevelError, nil))}, opts...)...)
}

func TestOpenAcceptsDirectoryOrFile(t *testing.T) {
	t.Parallel()

	f := testutil.NewCatalogFixture(t)
	tests := []struct {
		name string
		path string
	}{
		{"catalog directory", f.Dir},
		{"store file", f.Path},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := quietCatalog(tt.path)
			require.NoError(t, c.Open())
			defer func() { require.NoError(t, c.Close()) }()

			assert.Equal(t, f.Path, c.Path())
			assert.Equal(t, f.Dir, c.Dir())
			require.NoError(t, c.LoadVersion())
			assert.Equal(t, VersionCo12, c.Version())
		})
	}
}

func TestOpenFailures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.cocatalogdb")
	require.NoError(t, os.WriteFile(garbage, []byte(strings.Repeat("not a sqlite database\n", 200)), 0o600))
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(filepath.Join(nested, "Capture One Catalog.cocatalogdb"), 0o755))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.cocatalogdb")},
		{"directory without store", t.TempDir()},
		{"store name is a directory", nested},
		{"not a database", garbage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := quietCatalog(tt.path)
			err := c.Open()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConnection)
			assert.True(t, errors.IsCategory(err, errors.CategoryConnection))
			assert.Empty(t, c.Path(), "failed open must not leave state behind")

			err = c.LoadVersion()
			assert.ErrorIs(t, err, ErrNoConnection)
		})
	}
}

func TestOpenTwiceIsNoop(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	require.NoError(t, s.Open())
	require.NoError(t, s.LoadVersion())
}

func TestLoadVersionBeforeOpen(t *testing.T) {
	t.Parallel()

	c := quietCatalog(t.TempDir())
	err := c.LoadVersion()
	require.ErrorIs(t, err, ErrNoConnection)
	assert.True(t, errors.IsCategory(err, errors.CategoryState))
}

func TestLoadersRequireRegistry(t *testing.T) {
	t.Parallel()

	s := newSession(t)
	loaders := map[string]func() error{
		"keywords":      func() error { _, err := s.LoadKeywords(); return err },
		"keywords tree": func() error { _, err := s.LoadKeywordsTree(); return err },
		"folders":       func() error { _, err := s.LoadFolders(); return err },
		"images":        func() error { _, err := s.LoadImages(); return err },
		"stacks":        func() error { _, err := s.LoadStacks(); return err },
		"collections":   func() error { _, err := s.LoadCollections(); return err },
		"stack content": func() error { return s.ResolveStackContent(&Stack{ID: 1}) },
		"collection content": func() error {
			return s.ResolveCollectionContent(&Collection{ID: 5})
		},
	}

	for name, load := range loaders {
		assert.ErrorIs(t, load(), ErrNoRegistry, name)
	}
}

func TestLoadVersionSupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  int64
		want Version
	}{
		{"Co11", testutil.VersionCo11, VersionCo11},
		{"Co12", testutil.VersionCo12, VersionCo12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSession(t, testutil.WithVersion(tt.raw))
			require.NoError(t, s.LoadVersion())
			require.NoError(t, s.LoadVersion(), "second call is a no-op")

			assert.Equal(t, tt.want, s.Version())
			assert.Equal(t, tt.raw, s.RawVersion())
			assert.Equal(t, ID(1), s.RootCollectionID())
			require.NotNil(t, s.Registry())
			assert.Equal(t, len(s.fixture.Entities), s.Registry().Len())

			id, ok := s.Registry().ResolveID(EntityImage)
			require.True(t, ok)
			assert.Equal(t, s.fixture.Entities[testutil.EntityImage], id)

			name, ok := s.Registry().ResolveName(id)
			require.True(t, ok)
			assert.Equal(t, EntityImage, name)

			assert.InDelta(t, float64(tt.raw), s.metricValue(t, "catalog_version", nil), 0)
		})
	}
}

func TestLoadVersionUnsupported(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []testutil.FixtureOption
		raw  int64
	}{
		{"future version", []testutil.FixtureOption{testutil.WithVersion(1600)}, 1600},
		{"older version", []testutil.FixtureOption{testutil.WithVersion(900)}, 900},
		{"no version row", []testutil.FixtureOption{testutil.WithoutVersion()}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newSession(t, tt.opts...)
			err := s.LoadVersion()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedVersion)
			assert.True(t, errors.IsCategory(err, errors.CategoryUnsupportedVersion))

			var uve *UnsupportedVersionError
			require.ErrorAs(t, err, &uve)
			assert.Equal(t, tt.raw, uve.Raw)
			assert.Equal(t, VersionUnknown, s.Version())
			assert.Equal(t, tt.raw, s.RawVersion())
			assert.Nil(t, s.Registry())

			images, err := s.LoadImages()
			assert.ErrorIs(t, err, ErrNoRegistry)
			assert.Empty(t, images)
			collections, err := s.LoadCollections()
			assert.ErrorIs(t, err, ErrNoRegistry)
			assert.Empty(t, collections)
		})
	}
}

func TestCloseEndsSession(t *testing.T) {
	t.Parallel()

	f := testutil.NewCatalogFixture(t)
	c := quietCatalog(f.Dir)
	require.NoError(t, c.Open())
	require.NoError(t, c.LoadVersion())
	_, err := c.LoadKeywords()
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "closing twice is harmless")

	_, err = c.LoadKeywords()
	assert.ErrorIs(t, err, ErrNoConnection)
	assert.ErrorIs(t, c.LoadVersion(), ErrNoConnection)
	assert.Nil(t, c.Registry())
	assert.Empty(t, c.Path())

	// a closed session can be opened again from scratch
	require.NoError(t, c.Open())
	require.NoError(t, c.LoadVersion())
	keywords, err := c.LoadKeywords()
	require.NoError(t, err)
	assert.Len(t, keywords, 4)
	require.NoError(t, c.Close())
}

func TestVersionClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw       int64
		want      Version
		supported bool
		name      string
	}{
		{1100, VersionCo11, true, "Co11"},
		{1200, VersionCo12, true, "Co12"},
		{0, VersionUnknown, false, "Unknown"},
		{1201, VersionUnknown, false, "Unknown"},
		{-1, VersionUnknown, false, "Unknown"},
	}

	for _, tt := range tests {
		v := ClassifyVersion(tt.raw)
		assert.Equal(t, tt.want, v, "raw %d", tt.raw)
		assert.Equal(t, tt.supported, v.Supported(), "raw %d", tt.raw)
		assert.Equal(t, tt.name, v.String(), "raw %d", tt.raw)
	}
}

func TestDSNIsReadOnlyURI(t *testing.T) {
	t.Parallel()

	c := quietCatalog("/x")
	assert.Equal(t, "file:///photos/My%20Catalog/Capture%20One%20Catalog.cocatalogdb?mode=ro",
		c.dsn("/photos/My Catalog/Capture One Catalog.cocatalogdb"))

	rw := quietCatalog("/x", WithReadOnly(false))
	assert.Equal(t, "file:///a.db?mode=rw", rw.dsn("/a.db"))
}
