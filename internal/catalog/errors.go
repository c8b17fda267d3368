package catalog

import (
	"fmt"

	"github.com/tphakala/cocatalog/internal/errors"
)

const componentCatalog = "catalog"

// Sentinel errors. Every error returned by a Catalog wraps at most one of
// them, so callers can branch with errors.Is.
var (
	// ErrConnection means the store could not be opened.
	ErrConnection = errors.NewStd("cannot open catalog")
	// ErrNoConnection means the session is not open, or was closed.
	ErrNoConnection = errors.NewStd("catalog is not open")
	// ErrUnsupportedVersion means the version gate rejected the catalog.
	ErrUnsupportedVersion = errors.NewStd("unsupported catalog version")
	// ErrNoRegistry means a loader ran before LoadVersion succeeded.
	ErrNoRegistry = errors.NewStd("entity registry not loaded")
	// ErrDecode means a required column was NULL or malformed.
	ErrDecode = errors.NewStd("malformed catalog row")
)

// UnsupportedVersionError carries the raw version number read from the
// catalog. It matches ErrUnsupportedVersion.
type UnsupportedVersionError struct {
	Raw int64
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported catalog version %d", e.Raw)
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}

// ErrorCategory implements errors.CategorizedError.
func (e *UnsupportedVersionError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryUnsupportedVersion
}

func connectionError(err error, path string) error {
	return errors.Newf("%w: %w", ErrConnection, err).
		Component(componentCatalog).
		Category(errors.CategoryConnection).
		Priority(errors.PriorityHigh).
		FileContext(path).
		Context("operation", "open").
		Build()
}

func stateError(sentinel error, operation string) error {
	return errors.New(sentinel).
		Component(componentCatalog).
		Category(errors.CategoryState).
		Priority(errors.PriorityLow).
		Context("operation", operation).
		Build()
}

func unsupportedVersionError(raw int64) error {
	return errors.New(&UnsupportedVersionError{Raw: raw}).
		Component(componentCatalog).
		Category(errors.CategoryUnsupportedVersion).
		Context("version", raw).
		Build()
}

// queryError keeps the driver message unchanged.
func queryError(err error, table string) error {
	return errors.New(err).
		Component(componentCatalog).
		Category(errors.CategoryDatabase).
		Context("operation", "query").
		Context("table", table).
		Build()
}

func scanError(err error, table string) error {
	return errors.Newf("%w: %s: %w", ErrDecode, table, err).
		Component(componentCatalog).
		Category(errors.CategoryDecode).
		Context("table", table).
		Build()
}

func missingColumnError(table, column string, rowID int64) error {
	return errors.Newf("%w: %s.%s is NULL in row %d", ErrDecode, table, column, rowID).
		Component(componentCatalog).
		Category(errors.CategoryDecode).
		Context("table", table).
		Context("column", column).
		Context("row_id", rowID).
		Build()
}
