package sql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/pgforge"
)

// FormatArray renders a sequence of scalars as a Postgres array literal of
// the form {e1,e2,...}. String elements are double-quoted with embedded
// double quotes doubled, so that ParseArray round-trips them. Nil renders
// as NULL, booleans and numbers via their natural text form, and values
// implementing fmt.Stringer via String(). An empty sequence renders as {}.
func FormatArray(items []any) string {
	elems := make([]string, len(items))
	for i, item := range items {
		elems[i] = formatElement(item)
	}
	return "{" + strings.Join(elems, ",") + "}"
}

func formatElement(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseArray decodes a Postgres array literal into its elements. It returns
// a FormatError unless the text is brace-delimited. Top-level elements are
// split on commas outside quoted spans, trimmed, and decoded as follows:
// NULL becomes nil, true/false become booleans, numeric-looking text becomes
// int64 or float64, quoted text becomes an unescaped string (doubled quotes
// collapse to one), and anything else is kept as a raw string.
//
// The scanner is a naive single-level pass: nested arrays and backslash
// escapes inside quotes are not supported.
func ParseArray(text string) ([]any, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < 2 || !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, pgforge.NewFormatError(text)
	}
	inner := trimmed[1 : len(trimmed)-1]
	if strings.TrimSpace(inner) == "" {
		return []any{}, nil
	}
	var (
		elems  []string
		cur    strings.Builder
		quoted bool
	)
	for i := 0; i < len(inner); i++ {
		switch ch := inner[i]; {
		case ch == '"':
			quoted = !quoted
			cur.WriteByte(ch)
		case ch == ',' && !quoted:
			elems = append(elems, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	elems = append(elems, cur.String())
	out := make([]any, len(elems))
	for i, e := range elems {
		out[i] = decodeElement(strings.TrimSpace(e))
	}
	return out, nil
}

func decodeElement(s string) any {
	switch s {
	case "NULL":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}
