package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const maxTitleLength = 1024

// ValidationError lists the fields that failed validation, keyed by
// "records[i].field".
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s:%s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

// Validate checks records coming from an external source.
func Validate(records []JobRecord) error {
	errs := make(map[string]string)
	for i, r := range records {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			errs[fmt.Sprintf("records[%d].title", i)] = "title is required"
		} else if len(title) > maxTitleLength {
			errs[fmt.Sprintf("records[%d].title", i)] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
		}
		for j, s := range r.Skills {
			if strings.TrimSpace(s) == "" {
				errs[fmt.Sprintf("records[%d].skills[%d]", i, j)] = "skill must not be empty"
			}
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
