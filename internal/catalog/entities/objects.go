package entities

import "database/sql"

// Keyword is a row of ZKEYWORD. Parent is 0 or NULL for top-level keywords.
type Keyword struct {
	ID     sql.NullInt64  `gorm:"column:Z_PK"`
	Entity sql.NullInt64  `gorm:"column:Z_ENT"`
	Name   sql.NullString `gorm:"column:ZNAME"`
	Parent OptionalInt64  `gorm:"column:ZPARENT"`
}

// TableName returns the table name for GORM.
func (Keyword) TableName() string {
	return "ZKEYWORD"
}

// PathLocation is a row of ZPATHLOCATION, one folder of the catalog.
type PathLocation struct {
	ID           sql.NullInt64  `gorm:"column:Z_PK"`
	Entity       sql.NullInt64  `gorm:"column:Z_ENT"`
	MacRoot      OptionalString `gorm:"column:ZMACROOT"`
	RelativePath sql.NullString `gorm:"column:ZRELATIVEPATH"`
	IsRelative   OptionalInt64  `gorm:"column:ZISRELATIVE"`
}

// TableName returns the table name for GORM.
func (PathLocation) TableName() string {
	return "ZPATHLOCATION"
}

// Image is a row of ZIMAGE. ZIMAGELOCATION references a PathLocation.
type Image struct {
	ID             sql.NullInt64   `gorm:"column:Z_PK"`
	Entity         sql.NullInt64   `gorm:"column:Z_ENT"`
	UUID           sql.NullString  `gorm:"column:ZIMAGEUUID"`
	Location       sql.NullInt64   `gorm:"column:ZIMAGELOCATION"`
	DisplayName    sql.NullString  `gorm:"column:ZDISPLAYNAME"`
	FileName       sql.NullString  `gorm:"column:ZIMAGEFILENAME"`
	Classification OptionalInt64   `gorm:"column:ZIMAGECLASSIFICATION"`
	Format         OptionalString  `gorm:"column:ZEXP_FORMAT"`
	GPSAltitude    OptionalFloat64 `gorm:"column:ZGPSALTITUDE"`
	GPSLatitude    OptionalFloat64 `gorm:"column:ZGPSLATITUDE"`
	GPSLongitude   OptionalFloat64 `gorm:"column:ZGPSLONGITUDE"`
}

// TableName returns the table name for GORM.
func (Image) TableName() string {
	return "ZIMAGE"
}

// Stack is a row of ZSTACK.
type Stack struct {
	ID          sql.NullInt64 `gorm:"column:Z_PK"`
	Entity      sql.NullInt64 `gorm:"column:Z_ENT"`
	Collection  OptionalInt64 `gorm:"column:ZCOLLECTION"`
	PickedImage OptionalInt64 `gorm:"column:ZPICKEDIMAGE"`
}

// TableName returns the table name for GORM.
func (Stack) TableName() string {
	return "ZSTACK"
}

// StackImageLink places one image in one stack.
type StackImageLink struct {
	Stack sql.NullInt64 `gorm:"column:ZSTACK"`
	Image sql.NullInt64 `gorm:"column:ZIMAGE"`
}

// TableName returns the table name for GORM.
func (StackImageLink) TableName() string {
	return "ZSTACKIMAGELINK"
}

// Collection is a row of ZCOLLECTION. Which of Name and FolderLocation is
// meaningful depends on the entity type in Entity.
type Collection struct {
	Entity         sql.NullInt64  `gorm:"column:Z_ENT"`
	ID             sql.NullInt64  `gorm:"column:Z_PK"`
	Name           sql.NullString `gorm:"column:ZNAME"`
	Parent         OptionalInt64  `gorm:"column:ZPARENT"`
	FolderLocation sql.NullInt64  `gorm:"column:ZFOLDERLOCATION"`
}

// TableName returns the table name for GORM.
func (Collection) TableName() string {
	return "ZCOLLECTION"
}
