package app

import (
	"regexp"
	"strings"
)

const maxTracedQueryLen = 512

var querySpace = regexp.MustCompile(`\s+`)

// formatDBQueryForTrace collapses whitespace and caps the length so
// span attributes stay readable.
func formatDBQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	flat := querySpace.ReplaceAllString(query, " ")
	if len(flat) > maxTracedQueryLen {
		return flat[:maxTracedQueryLen] + "..."
	}
	return flat
}
