package catalog

import (
	"slices"

	"github.com/tphakala/cocatalog/internal/catalog/entities"
)

// Entity names the loaders resolve through the registry.
const (
	EntityKeyword = "Keyword"
	EntityFolder  = "PathLocation"
	EntityImage   = "Image"
	EntityStack   = "Stack"

	EntityProjectCollection       = "ProjectCollection"
	EntityCatalogAllCollection    = "CatalogAllImagesCollection"
	EntityCatalogInternCollection = "CatalogInternalImagesCollection"
	EntityTrashCollection         = "TrashCollection"
	EntityAlbumCollection         = "AlbumCollection"
	EntityFolderCollection        = "CatalogFolderCollection"
	EntityVirtualFolderCollection = "VirtualFolderCollection"
)

// RegistryEntry is one row of the entity table.
type RegistryEntry struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Registry maps numeric entity types to entity names and back. Entity ids
// are assigned by the catalog and differ between generations, so loaders
// always go through it.
type Registry struct {
	byID   map[int64]string
	byName map[string]int64
}

func newRegistry(rows []entities.Entity) (*Registry, error) {
	r := &Registry{
		byID:   make(map[int64]string, len(rows)),
		byName: make(map[string]int64, len(rows)),
	}
	table := entities.Entity{}.TableName()
	for _, row := range rows {
		if !row.ID.Valid {
			return nil, missingColumnError(table, "Z_ENT", 0)
		}
		if !row.Name.Valid {
			return nil, missingColumnError(table, "ZNAME", row.ID.Int64)
		}
		r.byID[row.ID.Int64] = row.Name.String
		// first id wins if a name is listed twice
		if _, dup := r.byName[row.Name.String]; !dup {
			r.byName[row.Name.String] = row.ID.Int64
		}
	}
	return r, nil
}

// ResolveID returns the entity id for name. A miss means the concept does
// not exist in this catalog generation.
func (r *Registry) ResolveID(name string) (int64, bool) {
	if r == nil {
		return 0, false
	}
	id, ok := r.byName[name]
	return id, ok
}

// ResolveName returns the entity name for id.
func (r *Registry) ResolveName(id int64) (string, bool) {
	if r == nil {
		return "", false
	}
	name, ok := r.byID[id]
	return name, ok
}

// Len returns the number of entity types.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byID)
}

// Entries returns all entity types ordered by id.
func (r *Registry) Entries() []RegistryEntry {
	if r == nil {
		return nil
	}
	out := make([]RegistryEntry, 0, len(r.byID))
	for id, name := range r.byID {
		out = append(out, RegistryEntry{ID: id, Name: name})
	}
	slices.SortFunc(out, func(a, b RegistryEntry) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}
