package catalog

import (
	"fmt"

	"github.com/tphakala/cocatalog/internal/catalog/entities"
)

// CollectionType is the variant of a collection. It is chosen from the
// entity name of the row, never from a column value.
type CollectionType interface {
	fmt.Stringer
	// Kind is a stable lowercase name for machine-readable output.
	Kind() string
	isCollectionType()
}

type (
	// Invalid is the zero variant.
	Invalid struct{}
	// Album is a user album.
	Album struct{ Name string }
	// VirtualFolder groups albums and projects.
	VirtualFolder struct{ Name string }
	// Project is the catalog root.
	Project struct{}
	// CatalogAll contains every image of the catalog.
	CatalogAll struct{}
	// Trash contains deleted images.
	Trash struct{}
	// CatalogInternalImages contains the images stored inside the catalog.
	CatalogInternalImages struct{}
	// FolderCollection mirrors a Folder.
	FolderCollection struct{ Folder ID }
)

func (Invalid) String() string               { return "Invalid" }
func (a Album) String() string               { return fmt.Sprintf("Alb: %q", a.Name) }
func (v VirtualFolder) String() string       { return fmt.Sprintf("VF: %q", v.Name) }
func (Project) String() string               { return "root" }
func (CatalogAll) String() string            { return "All Images" }
func (Trash) String() string                 { return "Trash" }
func (CatalogInternalImages) String() string { return "All catalog images" }
func (f FolderCollection) String() string    { return fmt.Sprintf("Path folder: %d", f.Folder) }

func (Invalid) Kind() string               { return "invalid" }
func (Album) Kind() string                 { return "album" }
func (VirtualFolder) Kind() string         { return "virtual_folder" }
func (Project) Kind() string               { return "project" }
func (CatalogAll) Kind() string            { return "catalog_all" }
func (Trash) Kind() string                 { return "trash" }
func (CatalogInternalImages) Kind() string { return "catalog_internal" }
func (FolderCollection) Kind() string      { return "folder" }

func (Invalid) isCollectionType()               {}
func (Album) isCollectionType()                 {}
func (VirtualFolder) isCollectionType()         {}
func (Project) isCollectionType()               {}
func (CatalogAll) isCollectionType()            {}
func (Trash) isCollectionType()                 {}
func (CatalogInternalImages) isCollectionType() {}
func (FolderCollection) isCollectionType()      {}

// Collection is one row of the collection tree.
type Collection struct {
	ID      ID
	Parent  ID
	Type    CollectionType
	Content Members
}

// CollectionDecoder builds the variant for a row whose entity name it is
// registered under. Returning an error fails the whole load.
type CollectionDecoder func(row entities.Collection) (CollectionType, error)

func constantDecoder(t CollectionType) CollectionDecoder {
	return func(entities.Collection) (CollectionType, error) {
		return t, nil
	}
}

func requiredName(row entities.Collection) (string, error) {
	if !row.Name.Valid {
		return "", missingColumnError(row.TableName(), "ZNAME", row.ID.Int64)
	}
	return row.Name.String, nil
}

func defaultCollectionDecoders() map[string]CollectionDecoder {
	return map[string]CollectionDecoder{
		EntityProjectCollection:       constantDecoder(Project{}),
		EntityCatalogAllCollection:    constantDecoder(CatalogAll{}),
		EntityCatalogInternCollection: constantDecoder(CatalogInternalImages{}),
		EntityTrashCollection:         constantDecoder(Trash{}),
		EntityAlbumCollection: func(row entities.Collection) (CollectionType, error) {
			name, err := requiredName(row)
			if err != nil {
				return nil, err
			}
			return Album{Name: name}, nil
		},
		EntityVirtualFolderCollection: func(row entities.Collection) (CollectionType, error) {
			name, err := requiredName(row)
			if err != nil {
				return nil, err
			}
			return VirtualFolder{Name: name}, nil
		},
		EntityFolderCollection: func(row entities.Collection) (CollectionType, error) {
			if !row.FolderLocation.Valid {
				return nil, missingColumnError(row.TableName(), "ZFOLDERLOCATION", row.ID.Int64)
			}
			return FolderCollection{Folder: ID(row.FolderLocation.Int64)}, nil
		},
	}
}

// SkippedRow is a row a tolerant loader dropped.
type SkippedRow struct {
	Table      string `json:"table" yaml:"table"`
	RowID      ID     `json:"row_id" yaml:"row_id"`
	EntityID   int64  `json:"entity_id" yaml:"entity_id"`
	EntityName string `json:"entity_name" yaml:"entity_name"`
	Reason     string `json:"reason" yaml:"reason"`
}
