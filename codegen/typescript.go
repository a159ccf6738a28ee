package codegen

import (
	"fmt"
	"strings"

	"github.com/syssam/pgforge/introspect"
)

// TSType returns the TypeScript type of a column, without the null union.
// Array columns map their element type recursively and append [].
func TSType(c introspect.Column) string {
	if IsArray(c) {
		return TSType(introspect.Column{DataType: elementType(c)}) + "[]"
	}
	return tsScalar(Classify(c.DataType))
}

func tsScalar(f Family) string {
	switch f {
	case FamilyInteger, FamilyFloat:
		return "number"
	case FamilyBoolean:
		return "boolean"
	case FamilyText, FamilyTime, FamilyUUID:
		return "string"
	case FamilyJSON:
		return "Record<string, unknown>"
	case FamilyBytes:
		return "Buffer"
	default:
		return "any"
	}
}

// columnDocLines aggregates a column's documentation, in fixed order: the
// stored comment, the default value, nullability and primary-key
// membership, one line each.
func columnDocLines(t introspect.Table, c introspect.Column) []string {
	var lines []string
	if c.Comment != "" {
		lines = append(lines, c.Comment)
	}
	if c.HasDefault {
		lines = append(lines, "has default: "+c.Default)
	}
	if c.Nullable {
		lines = append(lines, "nullable")
	}
	if t.IsPrimary(c.Name) {
		lines = append(lines, "primary key")
	}
	return lines
}

// TSInterface renders one documented TypeScript interface for the table
// under the given name, one property per column in catalog order. Nullable
// columns render as optional with an explicit null union.
func TSInterface(name string, t introspect.Table) string {
	var b strings.Builder
	if t.Comment != "" {
		writeBlockComment(&b, "", []string{t.Comment})
	}
	fmt.Fprintf(&b, "export interface %s {\n", name)
	for _, c := range t.Columns {
		if lines := columnDocLines(t, c); len(lines) > 0 {
			writeBlockComment(&b, "  ", lines)
		}
		opt, null := "", ""
		if c.Nullable {
			opt, null = "?", " | null"
		}
		fmt.Fprintf(&b, "  %s%s: %s%s;\n", c.Name, opt, TSType(c), null)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeBlockComment(b *strings.Builder, indent string, lines []string) {
	b.WriteString(indent + "/**\n")
	for _, line := range lines {
		b.WriteString(indent + " * " + line + "\n")
	}
	b.WriteString(indent + " */\n")
}

// tsExportMap renders the named-export map from table name to interface
// name as a const object.
func tsExportMap(exports []Export) string {
	var b strings.Builder
	b.WriteString("export const tableInterfaces = {\n")
	for _, e := range exports {
		fmt.Fprintf(&b, "  %q: %q,\n", e.Table, e.Name)
	}
	b.WriteString("} as const;\n")
	return b.String()
}
