package catalog

import (
	"github.com/tphakala/cocatalog/internal/catalog/entities"
	"gorm.io/gorm"
)

// ResolveStackContent fetches the images of s into s.Content. A stack that
// is already resolved is left untouched.
func (c *Catalog) ResolveStackContent(s *Stack) error {
	if err := c.requireRegistry("resolve_stack_content"); err != nil {
		return err
	}
	if s.Content.IsLoaded() {
		return nil
	}

	rows, err := queryRows[entities.StackImageLink](c, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("ZSTACK, ZIMAGE").Where("ZSTACK = ?", int64(s.ID))
	})
	if err != nil {
		return err
	}

	ids := make([]ID, 0, len(rows))
	for _, row := range rows {
		if !row.Image.Valid {
			return missingColumnError(row.TableName(), "ZIMAGE", int64(s.ID))
		}
		ids = append(ids, ID(row.Image.Int64))
	}
	s.Content = resolvedMembers(ids)
	return nil
}

// ResolveCollectionContent fetches the stacks of col into col.Content. A
// collection that is already resolved is left untouched.
func (c *Catalog) ResolveCollectionContent(col *Collection) error {
	if err := c.requireRegistry("resolve_collection_content"); err != nil {
		return err
	}
	if col.Content.IsLoaded() {
		return nil
	}

	ent, ok := c.resolveEntity(EntityStack)
	if !ok {
		col.Content = resolvedMembers(nil)
		return nil
	}

	rows, err := queryRows[entities.Stack](c, func(tx *gorm.DB) *gorm.DB {
		return tx.Select("Z_PK").Where("ZCOLLECTION = ? AND Z_ENT = ?", int64(col.ID), ent)
	})
	if err != nil {
		return err
	}

	ids := make([]ID, 0, len(rows))
	for _, row := range rows {
		if !row.ID.Valid {
			return missingColumnError(row.TableName(), "Z_PK", 0)
		}
		ids = append(ids, ID(row.ID.Int64))
	}
	col.Content = resolvedMembers(ids)
	return nil
}
