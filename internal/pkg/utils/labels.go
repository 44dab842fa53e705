package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ColumnLabel turns a snake_case column name into a Title Case header.
func ColumnLabel(column string) string {
	words := strings.ReplaceAll(strings.TrimSpace(column), "_", " ")
	return cases.Title(language.English).String(words)
}

// ColumnLabels maps ColumnLabel over columns.
func ColumnLabels(columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = ColumnLabel(c)
	}
	return out
}
