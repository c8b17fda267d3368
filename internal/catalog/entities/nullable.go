package entities

import (
	"database/sql/driver"
	"strconv"
	"strings"
)

// OptionalInt64 scans an integer column that may be NULL or malformed.
// Anything that is not an integer leaves Valid false instead of failing the scan.
type OptionalInt64 struct {
	Int64 int64
	Valid bool
}

// Scan implements sql.Scanner.
func (o *OptionalInt64) Scan(value any) error {
	*o = OptionalInt64{}
	switch v := value.(type) {
	case int64:
		o.Int64, o.Valid = v, true
	case float64:
		if v == float64(int64(v)) {
			o.Int64, o.Valid = int64(v), true
		}
	case bool:
		if v {
			o.Int64 = 1
		}
		o.Valid = true
	case []byte:
		o.parse(string(v))
	case string:
		o.parse(v)
	}
	return nil
}

func (o *OptionalInt64) parse(s string) {
	if n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		o.Int64, o.Valid = n, true
	}
}

// Value implements driver.Valuer.
func (o OptionalInt64) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Int64, nil
}

// Or returns the value, or def when the column was NULL or malformed.
func (o OptionalInt64) Or(def int64) int64 {
	if !o.Valid {
		return def
	}
	return o.Int64
}

// OptionalFloat64 scans a real column that may be NULL or malformed.
type OptionalFloat64 struct {
	Float64 float64
	Valid   bool
}

// Scan implements sql.Scanner.
func (o *OptionalFloat64) Scan(value any) error {
	*o = OptionalFloat64{}
	switch v := value.(type) {
	case float64:
		o.Float64, o.Valid = v, true
	case int64:
		o.Float64, o.Valid = float64(v), true
	case []byte:
		o.parse(string(v))
	case string:
		o.parse(v)
	}
	return nil
}

func (o *OptionalFloat64) parse(s string) {
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		o.Float64, o.Valid = f, true
	}
}

// Value implements driver.Valuer.
func (o OptionalFloat64) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Float64, nil
}

// Ptr returns nil when the column was NULL or malformed.
func (o OptionalFloat64) Ptr() *float64 {
	if !o.Valid {
		return nil
	}
	f := o.Float64
	return &f
}

// OptionalString scans a text column that may be NULL.
type OptionalString struct {
	String string
	Valid  bool
}

// Scan implements sql.Scanner.
func (o *OptionalString) Scan(value any) error {
	*o = OptionalString{}
	switch v := value.(type) {
	case string:
		o.String, o.Valid = v, true
	case []byte:
		o.String, o.Valid = string(v), true
	case int64:
		o.String, o.Valid = strconv.FormatInt(v, 10), true
	case float64:
		o.String, o.Valid = strconv.FormatFloat(v, 'g', -1, 64), true
	}
	return nil
}

// Value implements driver.Valuer.
func (o OptionalString) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.String, nil
}

// Or returns the value, or def when the column was NULL.
func (o OptionalString) Or(def string) string {
	if !o.Valid {
		return def
	}
	return o.String
}
