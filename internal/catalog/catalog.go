// Package catalog reads Capture One catalogs.
//
// A Catalog is a read-only session over one catalog store. Loading happens in
// phases: Open the store, LoadVersion to pass the version gate and build the
// entity registry, then call the typed loaders. Each loader queries once per
// session and caches its result.
//
//	c := catalog.New(path)
//	if err := c.Open(); err != nil {
//	    return err
//	}
//	defer c.Close()
//	if err := c.LoadVersion(); err != nil {
//	    return err // errors.Is(err, catalog.ErrUnsupportedVersion)
//	}
//	images, err := c.LoadImages()
//
// A Catalog is not safe for concurrent use.
package catalog

import (
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/tphakala/cocatalog/internal/catalog/entities"
	"github.com/tphakala/cocatalog/internal/errors"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/observability/metrics"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold is the duration above which statements are logged as slow.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// Catalog is one session over one catalog store.
type Catalog struct {
	path          string
	filename      string
	readOnly      bool
	slowThreshold time.Duration
	log           logger.Logger
	metrics       *metrics.CatalogMetrics
	decoders      map[string]CollectionDecoder

	db     *gorm.DB
	dbPath string

	rawVersion     int64
	version        Version
	rootCollection ID
	registry       *Registry

	keywords    Lazy[[]Keyword]
	folders     Lazy[[]Folder]
	images      Lazy[[]Image]
	stacks      Lazy[[]Stack]
	collections Lazy[[]Collection]
	skipped     []SkippedRow
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. The default is the global "catalog" module.
func WithLogger(l logger.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records query and loader metrics into m.
func WithMetrics(m *metrics.CatalogMetrics) Option {
	return func(c *Catalog) { c.metrics = m }
}

// WithSlowQueryThreshold sets when statements are logged as slow. 0 disables it.
func WithSlowQueryThreshold(d time.Duration) Option {
	return func(c *Catalog) { c.slowThreshold = d }
}

// WithFilename overrides the store name looked up inside a catalog directory.
func WithFilename(name string) Option {
	return func(c *Catalog) {
		if name != "" {
			c.filename = name
		}
	}
}

// WithReadOnly controls whether the store is opened read-only. It is by
// default; nothing in this package writes either way.
func WithReadOnly(readOnly bool) Option {
	return func(c *Catalog) { c.readOnly = readOnly }
}

// WithCollectionDecoder registers the variant decoder for a collection entity
// name, replacing a built-in one if present.
func WithCollectionDecoder(entityName string, dec CollectionDecoder) Option {
	return func(c *Catalog) { c.decoders[entityName] = dec }
}

// New creates a closed session for the catalog at path. path is either the
// store file or a catalog directory holding it.
func New(path string, opts ...Option) *Catalog {
	c := &Catalog{
		path:          path,
		filename:      entities.CatalogFilename,
		readOnly:      true,
		slowThreshold: DefaultSlowQueryThreshold,
		decoders:      defaultCollectionDecoders(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.Global().Module("catalog")
	}
	return c
}

// Open connects to the store. On failure the session stays closed. Opening
// an open session is a no-op.
func (c *Catalog) Open() error {
	if c.db != nil {
		return nil
	}

	dbPath, err := c.resolvePath()
	if err != nil {
		return connectionError(err, c.path)
	}

	gormLogger := logger.NewGormLoggerAdapter(c.log.Module("sql"), c.slowThreshold).
		WithObserver(c.observeQuery)
	db, err := gorm.Open(sqlite.Open(c.dsn(dbPath)), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return connectionError(err, dbPath)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return connectionError(err, dbPath)
	}
	sqlDB.SetMaxOpenConns(1)

	// sqlite opens lazily; reading the schema cookie catches files that are not databases
	var schemaVersion int64
	if err := db.Raw("PRAGMA schema_version").Scan(&schemaVersion).Error; err != nil {
		_ = sqlDB.Close()
		return connectionError(err, dbPath)
	}

	c.db = db
	c.dbPath = dbPath
	c.log.Info("catalog opened",
		logger.String("path", dbPath),
		logger.Bool("read_only", c.readOnly))
	return nil
}

func (c *Catalog) resolvePath() (string, error) {
	abs, err := filepath.Abs(c.path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return abs, nil
	}

	file := filepath.Join(abs, c.filename)
	info, err = os.Stat(file)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", errors.Newf("%s is a directory", file).
			Component(componentCatalog).
			Category(errors.CategoryFileIO).
			Build()
	}
	return file, nil
}

func (c *Catalog) dsn(path string) string {
	mode := "ro"
	if !c.readOnly {
		mode = "rw"
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: "mode=" + mode}
	return u.String()
}

// Close releases the connection and forgets everything loaded. Later calls
// fail with ErrNoConnection until the session is opened again.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	sqlDB, err := c.db.DB()
	c.reset()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Catalog) reset() {
	c.db = nil
	c.dbPath = ""
	c.rawVersion = 0
	c.version = VersionUnknown
	c.rootCollection = 0
	c.registry = nil
	c.keywords = Lazy[[]Keyword]{}
	c.folders = Lazy[[]Folder]{}
	c.images = Lazy[[]Image]{}
	c.stacks = Lazy[[]Stack]{}
	c.collections = Lazy[[]Collection]{}
	c.skipped = nil
}

// LoadVersion reads the newest version row and, if the generation is
// supported, builds the entity registry and reads the root collection id.
// It is a no-op once it has succeeded.
func (c *Catalog) LoadVersion() error {
	if c.db == nil {
		return stateError(ErrNoConnection, "load_version")
	}
	if c.registry != nil {
		return nil
	}

	rows, err := queryRows[entities.VersionInfo](c, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("Z_PK, ZVERSION").Order("Z_PK DESC").Limit(1)
	})
	if err != nil {
		return err
	}

	var raw int64
	if len(rows) > 0 {
		if !rows[0].Version.Valid {
			return missingColumnError(rows[0].TableName(), "ZVERSION", rows[0].ID.Int64)
		}
		raw = rows[0].Version.Int64
	}
	c.rawVersion = raw
	c.version = ClassifyVersion(raw)
	if c.metrics != nil {
		c.metrics.SetCatalogVersion(raw, 0)
	}

	if !c.version.Supported() {
		c.log.Warn("unsupported catalog version", logger.Int64("version", raw))
		return unsupportedVersionError(raw)
	}

	entityRows, err := queryRows[entities.Entity](c, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("Z_ENT, ZNAME")
	})
	if err != nil {
		return err
	}
	registry, err := newRegistry(entityRows)
	if err != nil {
		return err
	}

	docRows, err := queryRows[entities.DocumentContent](c, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("ZROOTCOLLECTION").Limit(1)
	})
	if err != nil {
		return err
	}
	var root ID
	if len(docRows) > 0 {
		root = ID(docRows[0].RootCollection.Or(0))
	}

	c.registry = registry
	c.rootCollection = root
	if c.metrics != nil {
		c.metrics.SetCatalogVersion(raw, registry.Len())
	}
	c.log.Info("catalog version loaded",
		logger.Int64("version", raw),
		logger.String("generation", c.version.String()),
		logger.Int("entities", registry.Len()),
		logger.Int64("root_collection", int64(root)))
	return nil
}

// Path returns the store file in use, or "" when closed.
func (c *Catalog) Path() string {
	return c.dbPath
}

// Dir returns the directory holding the store, or "" when closed.
func (c *Catalog) Dir() string {
	if c.dbPath == "" {
		return ""
	}
	return filepath.Dir(c.dbPath)
}

// RawVersion returns the version number read by LoadVersion, 0 if none.
func (c *Catalog) RawVersion() int64 {
	return c.rawVersion
}

// Version returns the generation classified by LoadVersion.
func (c *Catalog) Version() Version {
	return c.version
}

// RootCollectionID returns the id of the root collection, 0 if unknown.
func (c *Catalog) RootCollectionID() ID {
	return c.rootCollection
}

// Registry returns the entity registry, nil before LoadVersion succeeds.
func (c *Catalog) Registry() *Registry {
	return c.registry
}

// SkippedCollections returns the collection rows LoadCollections dropped:
// rows whose entity has no decoder or is missing from the registry.
func (c *Catalog) SkippedCollections() []SkippedRow {
	out := make([]SkippedRow, len(c.skipped))
	copy(out, c.skipped)
	return out
}
