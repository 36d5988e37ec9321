package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the fixed-width ISO-8601 form written to every
// timestamp column, with nanosecond precision. Values are stored in UTC so
// that text ordering matches chronological ordering.
const TimestampLayout = "2006-01-02T15:04:05.000000000"

// parseLayouts are tried in order when reading a timestamp back.
var parseLayouts = []string{
	TimestampLayout,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.000",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01-0215:04:05",
}

// FormatTimestamp encodes t for storage.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp decodes a stored timestamp.
// Layouts without a zone are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

// nullTimestamp encodes an optional timestamp; nil becomes NULL.
func nullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTimestamp(*t), Valid: true}
}

// parseNullTimestamp decodes an optional timestamp; NULL becomes nil.
func parseNullTimestamp(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
