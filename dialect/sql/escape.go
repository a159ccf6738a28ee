package sql

import (
	"strconv"
	"strings"
)

// EscapeIdentifier quotes a column or table name for safe interpolation
// into SQL text. Embedded double quotes are doubled. It must be applied to
// every identifier rendered into a statement, and never to values.
func EscapeIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EscapeString doubles embedded single quotes. It is used only for literal
// interpolation contexts outside the positional-parameter path, such as
// LIKE pattern construction. Values bound as parameters are never escaped.
func EscapeString(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}

// Placeholders returns count comma-joined placeholder tokens starting at $1.
//
//	Placeholders(3) == "$1, $2, $3"
func Placeholders(count int) string {
	return PlaceholdersFrom(count, 1)
}

// PlaceholdersFrom returns count comma-joined placeholder tokens starting
// at the given index. It is used where placeholders must be pre-rendered
// before their parameters are pushed.
//
//	PlaceholdersFrom(2, 5) == "$5, $6"
func PlaceholdersFrom(count, start int) string {
	if count <= 0 {
		return ""
	}
	var b strings.Builder
	for i := range count {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(start + i))
	}
	return b.String()
}
