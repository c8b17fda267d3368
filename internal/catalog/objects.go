package catalog

import (
	"github.com/tphakala/cocatalog/internal/catalog/entities"
)

// ID is a catalog object identifier. It is unique within one catalog only.
// 0 means "none" wherever an ID is used as a reference.
type ID int64

// Keyword is one node of the keyword hierarchy.
type Keyword struct {
	ID     ID     `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Parent ID     `json:"parent" yaml:"parent"`
}

// Folder is a path location. Root is empty and IsRelative set when the
// folder lives inside the catalog package.
type Folder struct {
	ID           ID     `json:"id" yaml:"id"`
	Root         string `json:"root" yaml:"root"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
	IsRelative   bool   `json:"is_relative" yaml:"is_relative"`
}

// Image is an image record. GPS coordinates are nil when not recorded.
type Image struct {
	ID          ID          `json:"id" yaml:"id"`
	UUID        string      `json:"uuid" yaml:"uuid"`
	Folder      ID          `json:"folder" yaml:"folder"`
	Class       int64       `json:"class" yaml:"class"`
	Format      ImageFormat `json:"format" yaml:"format"`
	DisplayName string      `json:"display_name" yaml:"display_name"`
	FileName    string      `json:"file_name" yaml:"file_name"`
	Altitude    *float64    `json:"gps_altitude,omitempty" yaml:"gps_altitude,omitempty"`
	Latitude    *float64    `json:"gps_latitude,omitempty" yaml:"gps_latitude,omitempty"`
	Longitude   *float64    `json:"gps_longitude,omitempty" yaml:"gps_longitude,omitempty"`
}

// Stack groups images behind one pick.
type Stack struct {
	ID         ID      `json:"id" yaml:"id"`
	Collection ID      `json:"collection" yaml:"collection"`
	Pick       ID      `json:"pick" yaml:"pick"`
	Content    Members `json:"content" yaml:"content"`
}

// ImageFormat is the export format recorded for an image.
type ImageFormat int

const (
	ImageFormatUnknown ImageFormat = iota
	ImageFormatJPEG
	ImageFormatRAW
	ImageFormatMovie
)

// ParseImageFormat decodes ZEXP_FORMAT. Unrecognized values are Unknown.
func ParseImageFormat(raw string) ImageFormat {
	switch raw {
	case "JPEG":
		return ImageFormatJPEG
	case "RAW":
		return ImageFormatRAW
	case "MOVIE":
		return ImageFormatMovie
	default:
		return ImageFormatUnknown
	}
}

func (f ImageFormat) String() string {
	switch f {
	case ImageFormatJPEG:
		return "JPEG"
	case ImageFormatRAW:
		return "RAW"
	case ImageFormatMovie:
		return "Movie"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f ImageFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func keywordFromRow(row entities.Keyword) (Keyword, error) {
	table := row.TableName()
	if !row.ID.Valid {
		return Keyword{}, missingColumnError(table, "Z_PK", 0)
	}
	if !row.Name.Valid {
		return Keyword{}, missingColumnError(table, "ZNAME", row.ID.Int64)
	}
	return Keyword{
		ID:     ID(row.ID.Int64),
		Name:   row.Name.String,
		Parent: ID(row.Parent.Or(0)),
	}, nil
}

func folderFromRow(row entities.PathLocation) (Folder, error) {
	table := row.TableName()
	if !row.ID.Valid {
		return Folder{}, missingColumnError(table, "Z_PK", 0)
	}
	if !row.RelativePath.Valid {
		return Folder{}, missingColumnError(table, "ZRELATIVEPATH", row.ID.Int64)
	}
	return Folder{
		ID:           ID(row.ID.Int64),
		Root:         row.MacRoot.Or(""),
		RelativePath: row.RelativePath.String,
		IsRelative:   row.IsRelative.Or(0) != 0,
	}, nil
}

func imageFromRow(row entities.Image) (Image, error) {
	table := row.TableName()
	if !row.ID.Valid {
		return Image{}, missingColumnError(table, "Z_PK", 0)
	}
	id := row.ID.Int64
	switch {
	case !row.UUID.Valid:
		return Image{}, missingColumnError(table, "ZIMAGEUUID", id)
	case !row.Location.Valid:
		return Image{}, missingColumnError(table, "ZIMAGELOCATION", id)
	case !row.DisplayName.Valid:
		return Image{}, missingColumnError(table, "ZDISPLAYNAME", id)
	case !row.FileName.Valid:
		return Image{}, missingColumnError(table, "ZIMAGEFILENAME", id)
	}
	return Image{
		ID:          ID(id),
		UUID:        row.UUID.String,
		Folder:      ID(row.Location.Int64),
		Class:       row.Classification.Or(0),
		Format:      ParseImageFormat(row.Format.Or("")),
		DisplayName: row.DisplayName.String,
		FileName:    row.FileName.String,
		Altitude:    row.GPSAltitude.Ptr(),
		Latitude:    row.GPSLatitude.Ptr(),
		Longitude:   row.GPSLongitude.Ptr(),
	}, nil
}

func stackFromRow(row entities.Stack) (Stack, error) {
	if !row.ID.Valid {
		return Stack{}, missingColumnError(row.TableName(), "Z_PK", 0)
	}
	return Stack{
		ID:         ID(row.ID.Int64),
		Collection: ID(row.Collection.Or(0)),
		Pick:       ID(row.PickedImage.Or(0)),
	}, nil
}
