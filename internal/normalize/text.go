package normalize

import (
	"regexp"
	"strings"
)

var leadingNonPrintable = regexp.MustCompile(`^[^\x20-\x7E]+`)

// CleanLine strips a leading run of characters outside printable ASCII,
// such as a byte-order mark. Leading spaces are kept.
func CleanLine(line string) string {
	return leadingNonPrintable.ReplaceAllString(line, "")
}

// RemoveQuotes strips one layer of matching single or double quotes.
// Mismatched quotes are left untouched.
func RemoveQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '\'' || first == '"') {
		return s[1 : len(s)-1]
	}
	return s
}

// CleanToken removes one layer of quotes, then surrounding whitespace.
func CleanToken(s string) string {
	return strings.TrimSpace(RemoveQuotes(s))
}

// ColumnIndex returns the position of name in columns, or -1.
func ColumnIndex(columns []string, name string) int {
	for i, c := range columns {
		if c == name {
			return i
		}
	}
	return -1
}
