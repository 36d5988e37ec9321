package models

import (
	"fmt"
	"strings"
)

// Filter selects which slice of the task list to return
type Filter string

const (
	FilterActive    Filter = "active"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
	FilterDeleted   Filter = "deleted"
	FilterAll       Filter = "all"
)

// Filters lists every supported filter in display order
var Filters = []Filter{FilterActive, FilterPending, FilterCompleted, FilterDeleted, FilterAll}

// ParseFilter maps a user supplied name to a Filter
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FilterActive, nil
	}
	for _, known := range Filters {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w '%s' (must be: active, pending, completed, deleted, all)", ErrUnknownFilter, name)
}
