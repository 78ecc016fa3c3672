package query

import (
	"strconv"
	"strings"
	"unicode"
)

// allLocations is the location filter value meaning "no filter".
const allLocations = "all"

// ParseMinSalary reads a salary threshold typed by a user. It accepts an
// optional sign followed by digits and ignores anything after them, so
// "90000abc" reads as 90000. Input without leading digits means no filter.
func ParseMinSalary(raw string) *int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// ParseLocation returns nil for a blank location or "all" (any case, any
// surrounding space). Other values are kept as typed for exact matching.
func ParseLocation(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, allLocations) {
		return nil
	}
	return &raw
}

// ParseSkills splits a comma-separated skill list, lowercasing each entry and
// dropping empty ones.
func ParseSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimFunc(p, unicode.IsSpace))
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
