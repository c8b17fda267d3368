package catalog

import (
	"github.com/tphakala/cocatalog/internal/catalog/entities"
	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/observability/metrics"
	"gorm.io/gorm"
)

// Kinds used in logs and metric labels.
const (
	kindKeyword    = "keyword"
	kindFolder     = "folder"
	kindImage      = "image"
	kindStack      = "stack"
	kindCollection = "collection"
)

// loadTyped runs the single-entity loaders: resolve name, query rows of that
// entity, decode them all or fail.
func loadTyped[R tabler, T any](c *Catalog, cache *Lazy[[]T], kind, entity, columns string, decode func(R) (T, error)) ([]T, error) {
	if err := c.requireRegistry("load_" + kind); err != nil {
		return nil, err
	}
	if cached, ok := cache.Get(); ok {
		c.recordCacheHit(kind)
		return cached, nil
	}

	ent, ok := c.resolveEntity(entity)
	out := []T{}
	if ok {
		rows, err := queryRows[R](c, func(tx *gorm.DB) *gorm.DB {
			return tx.Select(columns).Where("Z_ENT = ?", ent)
		})
		if err != nil {
			return nil, err
		}
		out = make([]T, 0, len(rows))
		for _, row := range rows {
			v, err := decode(row)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
	}

	*cache = Loaded(out)
	c.recordLoaded(kind, len(out))
	c.log.Debug("loaded", logger.String("kind", kind), logger.Int("rows", len(out)))
	return out, nil
}

// LoadKeywords returns all keywords.
func (c *Catalog) LoadKeywords() ([]Keyword, error) {
	return loadTyped(c, &c.keywords, kindKeyword, EntityKeyword,
		"Z_PK, ZNAME, ZPARENT", keywordFromRow)
}

// LoadKeywordsTree rebuilds the keyword tree from the cached keywords.
func (c *Catalog) LoadKeywordsTree() (*KeywordTree, error) {
	keywords, err := c.LoadKeywords()
	if err != nil {
		return nil, err
	}
	return NewKeywordTree(keywords), nil
}

// LoadFolders returns all folders.
func (c *Catalog) LoadFolders() ([]Folder, error) {
	return loadTyped(c, &c.folders, kindFolder, EntityFolder,
		"Z_PK, ZMACROOT, ZRELATIVEPATH, ZISRELATIVE", folderFromRow)
}

// LoadImages returns all images.
func (c *Catalog) LoadImages() ([]Image, error) {
	return loadTyped(c, &c.images, kindImage, EntityImage,
		"Z_PK, ZIMAGEUUID, ZIMAGELOCATION, ZDISPLAYNAME, ZIMAGEFILENAME, ZIMAGECLASSIFICATION, "+
			"ZEXP_FORMAT, ZGPSALTITUDE, ZGPSLATITUDE, ZGPSLONGITUDE", imageFromRow)
}

// LoadStacks returns all stacks with their images resolved.
func (c *Catalog) LoadStacks() ([]Stack, error) {
	if err := c.requireRegistry("load_" + kindStack); err != nil {
		return nil, err
	}
	if cached, ok := c.stacks.Get(); ok {
		c.recordCacheHit(kindStack)
		return cached, nil
	}

	var fresh Lazy[[]Stack]
	stacks, err := loadTyped(c, &fresh, kindStack, EntityStack,
		"Z_PK, ZCOLLECTION, ZPICKEDIMAGE", stackFromRow)
	if err != nil {
		return nil, err
	}
	for i := range stacks {
		if err := c.ResolveStackContent(&stacks[i]); err != nil {
			return nil, err
		}
	}
	c.stacks = fresh
	return stacks, nil
}

// LoadCollections returns every collection whose entity has a decoder, with
// its stacks resolved. Rows of other entities are skipped and reported by
// SkippedCollections.
func (c *Catalog) LoadCollections() ([]Collection, error) {
	if err := c.requireRegistry("load_" + kindCollection); err != nil {
		return nil, err
	}
	if cached, ok := c.collections.Get(); ok {
		c.recordCacheHit(kindCollection)
		return cached, nil
	}

	out := []Collection{}
	var skipped []SkippedRow
	if c.anyCollectionEntity() {
		rows, err := queryRows[entities.Collection](c, func(tx *gorm.DB) *gorm.DB {
			return tx.Select("Z_ENT, Z_PK, ZNAME, ZPARENT, ZFOLDERLOCATION")
		})
		if err != nil {
			return nil, err
		}
		out = make([]Collection, 0, len(rows))
		for _, row := range rows {
			col, skip, err := c.decodeCollection(row)
			if err != nil {
				return nil, err
			}
			if skip != nil {
				skipped = append(skipped, *skip)
				continue
			}
			out = append(out, col)
		}
	}

	for i := range out {
		if err := c.ResolveCollectionContent(&out[i]); err != nil {
			return nil, err
		}
	}

	c.collections = Loaded(out)
	c.skipped = skipped
	c.recordLoaded(kindCollection, len(out))
	c.log.Debug("loaded",
		logger.String("kind", kindCollection),
		logger.Int("rows", len(out)),
		logger.Int("skipped", len(skipped)))
	return out, nil
}

func (c *Catalog) anyCollectionEntity() bool {
	for name := range c.decoders {
		if _, ok := c.registry.ResolveID(name); ok {
			return true
		}
	}
	return false
}

// decodeCollection returns either a collection, a skip record, or an error.
func (c *Catalog) decodeCollection(row entities.Collection) (Collection, *SkippedRow, error) {
	table := row.TableName()
	if !row.Entity.Valid {
		return Collection{}, nil, missingColumnError(table, "Z_ENT", row.ID.Int64)
	}
	if !row.ID.Valid {
		return Collection{}, nil, missingColumnError(table, "Z_PK", 0)
	}

	skip := &SkippedRow{Table: table, RowID: ID(row.ID.Int64), EntityID: row.Entity.Int64}
	name, ok := c.registry.ResolveName(row.Entity.Int64)
	if !ok {
		skip.Reason = metrics.ReasonUnknownEntity
		c.recordSkipped(kindCollection, skip.Reason)
		c.log.Debug("collection row with unregistered entity",
			logger.Int64("row_id", row.ID.Int64),
			logger.Int64("entity_id", row.Entity.Int64))
		return Collection{}, skip, nil
	}

	decode, ok := c.decoders[name]
	if !ok {
		skip.EntityName = name
		skip.Reason = metrics.ReasonUnknownSubtype
		c.recordSkipped(kindCollection, skip.Reason)
		c.log.Warn("unhandled collection entity",
			logger.String("entity", name),
			logger.Int64("row_id", row.ID.Int64),
			logger.Int64("entity_id", row.Entity.Int64))
		return Collection{}, skip, nil
	}

	typ, err := decode(row)
	if err != nil {
		return Collection{}, nil, err
	}
	if typ == nil {
		typ = Invalid{}
	}
	return Collection{
		ID:     ID(row.ID.Int64),
		Parent: ID(row.Parent.Or(0)),
		Type:   typ,
	}, nil, nil
}
