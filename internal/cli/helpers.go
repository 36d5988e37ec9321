package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// dueDateLayouts are tried in order when parsing --due
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTaskID parses a positional task ID argument
func ParseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, &UsageError{Err: fmt.Errorf("invalid task ID %q: must be a positive integer", arg)}
	}
	return id, nil
}

// ParseDueDate accepts an absolute date ("2024-05-01", "2024-05-01 17:00",
// RFC 3339) in loc, or a duration relative to now ("48h", "+90m").
// A bare date means the end of that day.
func ParseDueDate(value string, now time.Time, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, &UsageError{Err: errors.New("due date cannot be empty")}
	}

	if d, err := time.ParseDuration(strings.TrimPrefix(value, "+")); err == nil {
		return now.Add(d), nil
	}

	for _, layout := range dueDateLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			t = t.Add(24*time.Hour - time.Minute)
		}
		return t, nil
	}

	return time.Time{}, &UsageError{Err: fmt.Errorf(
		"invalid due date %q (use YYYY-MM-DD, 'YYYY-MM-DD HH:MM', RFC 3339 or a duration like 48h)", value)}
}

// ReadDescription returns value, or the contents of r when value is "-"
func ReadDescription(value string, r io.Reader) (string, error) {
	if value != "-" {
		return value, nil
	}
	if r == nil {
		r = os.Stdin
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read description from stdin: %w", err)
	}
	return string(data), nil
}
