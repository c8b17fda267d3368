// Package testutil provides shared test utilities for the cocatalog project.
// These helpers build real SQLite catalogs so loader tests run against the
// same driver and SQL the command uses.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tphakala/cocatalog/internal/catalog/entities"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

// Versions written by the fixture.
const (
	VersionCo11 int64 = 1100
	VersionCo12 int64 = 1200
)

// Entity names of the sample dataset.
const (
	EntityKeyword        = "Keyword"
	EntityPathLocation   = "PathLocation"
	EntityVolumeLocation = "VolumeLocation"
	EntityImage          = "Image"
	EntityStack          = "Stack"
	EntityProject        = "ProjectCollection"
	EntityCatalogAll     = "CatalogAllImagesCollection"
	EntityCatalogInt     = "CatalogInternalImagesCollection"
	EntityTrash          = "TrashCollection"
	EntityAlbum          = "AlbumCollection"
	EntityFolder         = "CatalogFolderCollection"
	EntityVirtualFolder  = "VirtualFolderCollection"
	EntitySmartAlbum     = "SmartAlbumCollection"
)

// sampleEntities deliberately uses ids that do not follow declaration order.
var sampleEntities = []struct {
	id   int64
	name string
}{
	{20, EntityKeyword},
	{31, EntityPathLocation},
	{32, EntityVolumeLocation},
	{17, EntityImage},
	{38, EntityStack},
	{5, EntityProject},
	{6, EntityCatalogAll},
	{7, EntityCatalogInt},
	{8, EntityTrash},
	{9, EntityAlbum},
	{10, EntityFolder},
	{11, EntityVirtualFolder},
	{12, EntitySmartAlbum},
}

var schema = []string{
	`CREATE TABLE ZVERSIONINFO (Z_PK INTEGER PRIMARY KEY, ZVERSION INTEGER)`,
	`CREATE TABLE ZENTITIES (Z_ENT INTEGER PRIMARY KEY, ZNAME VARCHAR)`,
	`CREATE TABLE ZDOCUMENTCONTENT (Z_PK INTEGER PRIMARY KEY, ZROOTCOLLECTION INTEGER)`,
	`CREATE TABLE ZKEYWORD (Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, ZNAME VARCHAR, ZPARENT INTEGER)`,
	`CREATE TABLE ZPATHLOCATION (Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, ZMACROOT VARCHAR, ZRELATIVEPATH VARCHAR, ZISRELATIVE INTEGER)`,
	`CREATE TABLE ZIMAGE (Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, ZIMAGEUUID VARCHAR, ZIMAGELOCATION INTEGER,
		ZDISPLAYNAME VARCHAR, ZIMAGEFILENAME VARCHAR, ZIMAGECLASSIFICATION INTEGER, ZEXP_FORMAT VARCHAR,
		ZGPSALTITUDE FLOAT, ZGPSLATITUDE FLOAT, ZGPSLONGITUDE FLOAT)`,
	`CREATE TABLE ZSTACK (Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, ZCOLLECTION INTEGER, ZPICKEDIMAGE INTEGER)`,
	`CREATE TABLE ZSTACKIMAGELINK (Z_PK INTEGER PRIMARY KEY, ZSTACK INTEGER, ZIMAGE INTEGER)`,
	`CREATE TABLE ZCOLLECTION (Z_PK INTEGER PRIMARY KEY, Z_ENT INTEGER, ZNAME VARCHAR, ZPARENT INTEGER, ZFOLDERLOCATION INTEGER)`,
}

// Fixture describes a catalog written to a temporary directory.
type Fixture struct {
	// Dir is the catalog package directory.
	Dir string
	// Path is the store file inside Dir.
	Path string
	// Entities maps entity names to the ids written to ZENTITIES.
	Entities map[string]int64
}

type fixtureConfig struct {
	version    *int64
	entityBase int64
	statements []string
}

// FixtureOption customizes NewCatalogFixture.
type FixtureOption func(*fixtureConfig)

// WithVersion writes version as the newest ZVERSIONINFO row.
func WithVersion(version int64) FixtureOption {
	return func(c *fixtureConfig) { c.version = &version }
}

// WithoutVersion leaves ZVERSIONINFO empty.
func WithoutVersion() FixtureOption {
	return func(c *fixtureConfig) { c.version = nil }
}

// WithEntityOffset shifts every entity id, emulating a catalog generation
// that numbered its entities differently.
func WithEntityOffset(offset int64) FixtureOption {
	return func(c *fixtureConfig) { c.entityBase = offset }
}

// WithStatements runs extra SQL after the sample data is written. Tests use
// it to break rows or drop entities.
func WithStatements(stmts ...string) FixtureOption {
	return func(c *fixtureConfig) { c.statements = append(c.statements, stmts...) }
}

// NewCatalogFixture writes the sample catalog and returns where it lives.
// The database handle is closed before returning.
func NewCatalogFixture(t *testing.T, opts ...FixtureOption) *Fixture {
	t.Helper()

	co12 := VersionCo12
	cfg := &fixtureConfig{version: &co12}
	for _, opt := range opts {
		opt(cfg)
	}

	dir := filepath.Join(t.TempDir(), "Sample.cocatalog")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, entities.CatalogFilename)

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gorm_logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer func() { require.NoError(t, sqlDB.Close()) }()

	f := &Fixture{Dir: dir, Path: path, Entities: make(map[string]int64, len(sampleEntities))}
	for _, e := range sampleEntities {
		f.Entities[e.name] = e.id + cfg.entityBase
	}

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}
	writeSample(t, db, f, cfg)
	for _, stmt := range cfg.statements {
		require.NoError(t, db.Exec(stmt).Error, stmt)
	}

	return f
}

func exec(t *testing.T, db *gorm.DB, sql string, rows ...[]any) {
	t.Helper()
	for _, args := range rows {
		require.NoError(t, db.Exec(sql, args...).Error, sql)
	}
}

func writeSample(t *testing.T, db *gorm.DB, f *Fixture, cfg *fixtureConfig) {
	t.Helper()
	ent := f.Entities

	if cfg.version != nil {
		exec(t, db, `INSERT INTO ZVERSIONINFO (Z_PK, ZVERSION) VALUES (?, ?)`,
			[]any{1, VersionCo11 - 100},
			[]any{2, *cfg.version})
	}

	for _, e := range sampleEntities {
		exec(t, db, `INSERT INTO ZENTITIES (Z_ENT, ZNAME) VALUES (?, ?)`, []any{ent[e.name], e.name})
	}
	exec(t, db, `INSERT INTO ZDOCUMENTCONTENT (Z_PK, ZROOTCOLLECTION) VALUES (?, ?)`, []any{1, 1})

	exec(t, db, `INSERT INTO ZKEYWORD (Z_PK, Z_ENT, ZNAME, ZPARENT) VALUES (?, ?, ?, ?)`,
		[]any{1, ent[EntityKeyword], "Places", 0},
		[]any{2, ent[EntityKeyword], "Europe", 1},
		[]any{3, ent[EntityKeyword], "Asia", 1},
		[]any{4, ent[EntityKeyword], "People", nil})

	exec(t, db, `INSERT INTO ZPATHLOCATION (Z_PK, Z_ENT, ZMACROOT, ZRELATIVEPATH, ZISRELATIVE) VALUES (?, ?, ?, ?, ?)`,
		[]any{1, ent[EntityPathLocation], "/Volumes/Photos", "2023/Trip", 0},
		[]any{2, ent[EntityPathLocation], nil, "Imported", 1},
		[]any{3, ent[EntityVolumeLocation], "/Volumes/Photos", "", 0})

	exec(t, db, `INSERT INTO ZIMAGE (Z_PK, Z_ENT, ZIMAGEUUID, ZIMAGELOCATION, ZDISPLAYNAME, ZIMAGEFILENAME,
		ZIMAGECLASSIFICATION, ZEXP_FORMAT, ZGPSALTITUDE, ZGPSLATITUDE, ZGPSLONGITUDE) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		[]any{1, ent[EntityImage], "6F9619FF-8B86-D011-B42D-00C04FC964FF", 1, "IMG_0001", "IMG_0001.CR3", 0, "RAW", 35.0, 48.8584, 2.2945},
		[]any{2, ent[EntityImage], "0F8FAD5B-D9CB-469F-A165-70867728950E", 1, "IMG_0002", "IMG_0002.JPG", 1, "JPEG", nil, nil, nil},
		[]any{3, ent[EntityImage], "7C9E6679-7425-40DE-944B-E07FC1F90AE7", 2, "MOV_0003", "MOV_0003.MOV", 0, "MOVIE", nil, nil, nil},
		[]any{4, ent[EntityImage], "C56A4180-65AA-42EC-A945-5FD21DEC0538", 2, "IMG_0004", "IMG_0004.HEIC", nil, "HEIF", nil, nil, nil})

	exec(t, db, `INSERT INTO ZCOLLECTION (Z_PK, Z_ENT, ZNAME, ZPARENT, ZFOLDERLOCATION) VALUES (?, ?, ?, ?, ?)`,
		[]any{1, ent[EntityProject], nil, nil, nil},
		[]any{2, ent[EntityCatalogAll], nil, 1, nil},
		[]any{3, ent[EntityCatalogInt], nil, 1, nil},
		[]any{4, ent[EntityTrash], nil, 1, nil},
		[]any{5, ent[EntityAlbum], "Trip", 1, nil},
		[]any{6, ent[EntityFolder], nil, 1, 1},
		[]any{7, ent[EntityVirtualFolder], "Best of", 1, nil},
		[]any{8, ent[EntitySmartAlbum], "Recent", 1, nil})

	exec(t, db, `INSERT INTO ZSTACK (Z_PK, Z_ENT, ZCOLLECTION, ZPICKEDIMAGE) VALUES (?, ?, ?, ?)`,
		[]any{1, ent[EntityStack], 5, 1},
		[]any{2, ent[EntityStack], 5, 3},
		[]any{3, ent[EntityStack], 2, 4},
		[]any{4, ent[EntityStack], 6, 2})

	exec(t, db, `INSERT INTO ZSTACKIMAGELINK (ZSTACK, ZIMAGE) VALUES (?, ?)`,
		[]any{1, 1}, []any{1, 2}, []any{2, 3}, []any{3, 4}, []any{4, 2})
}
