package entities

import "database/sql"

// VersionInfo is one row of the catalog version history. The newest row wins.
type VersionInfo struct {
	ID      sql.NullInt64 `gorm:"column:Z_PK"`
	Version sql.NullInt64 `gorm:"column:ZVERSION"`
}

// TableName returns the table name for GORM.
func (VersionInfo) TableName() string {
	return "ZVERSIONINFO"
}

// Entity maps a numeric entity type to its Core Data entity name.
type Entity struct {
	ID   sql.NullInt64  `gorm:"column:Z_ENT"`
	Name sql.NullString `gorm:"column:ZNAME"`
}

// TableName returns the table name for GORM.
func (Entity) TableName() string {
	return "ZENTITIES"
}

// DocumentContent holds the single root collection pointer.
type DocumentContent struct {
	RootCollection OptionalInt64 `gorm:"column:ZROOTCOLLECTION"`
}

// TableName returns the table name for GORM.
func (DocumentContent) TableName() string {
	return "ZDOCUMENTCONTENT"
}

// CatalogFilename is the store name inside a catalog package directory.
const CatalogFilename = "Capture One Catalog.cocatalogdb"
