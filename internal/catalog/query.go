package catalog

import (
	"regexp"
	"time"

	"github.com/tphakala/cocatalog/internal/logger"
	"github.com/tphakala/cocatalog/internal/observability/metrics"
	"gorm.io/gorm"
)

type tabler interface {
	TableName() string
}

// queryRows runs one SELECT against the table of T and scans every row by
// column name. Driver failures are query errors, scan failures decode errors.
func queryRows[T tabler](c *Catalog, build func(tx *gorm.DB) *gorm.DB) ([]T, error) {
	var model T
	table := model.TableName()

	rows, err := build(c.db.Model(&model)).Rows()
	if err != nil {
		return nil, queryError(err, table)
	}
	defer func() { _ = rows.Close() }()

	var out []T
	for rows.Next() {
		var row T
		if err := c.db.ScanRows(rows, &row); err != nil {
			return nil, scanError(err, table)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(err, table)
	}
	return out, nil
}

// resolveEntity looks name up in the registry. ok is false when the concept
// does not exist in this catalog generation.
func (c *Catalog) resolveEntity(name string) (id int64, ok bool) {
	id, ok = c.registry.ResolveID(name)
	if !ok {
		c.log.Debug("entity not in registry", logger.String("entity", name))
	}
	return id, ok
}

func (c *Catalog) requireRegistry(operation string) error {
	if c.db == nil {
		return stateError(ErrNoConnection, operation)
	}
	if c.registry == nil {
		return stateError(ErrNoRegistry, operation)
	}
	return nil
}

var fromTablePattern = regexp.MustCompile("(?i)\\bFROM\\s+[`\"]?(\\w+)")

// tableFromSQL extracts the first table a statement reads from.
func tableFromSQL(sql string) string {
	if m := fromTablePattern.FindStringSubmatch(sql); m != nil {
		return m[1]
	}
	return "other"
}

func (c *Catalog) observeQuery(sql string, _ int64, elapsed time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	c.metrics.RecordQuery(tableFromSQL(sql), status, elapsed.Seconds())
}

func (c *Catalog) recordLoaded(kind string, rows int) {
	if c.metrics != nil {
		c.metrics.SetRowsLoaded(kind, rows)
	}
}

func (c *Catalog) recordCacheHit(kind string) {
	if c.metrics != nil {
		c.metrics.RecordCacheHit(kind)
	}
}

func (c *Catalog) recordSkipped(kind, reason string) {
	if c.metrics != nil {
		c.metrics.RecordRowSkipped(kind, reason)
	}
}
