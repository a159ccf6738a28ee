package codegen

import (
	"fmt"
	"strings"

	"github.com/syssam/pgforge/introspect"
)

// GraphQLType returns the GraphQL type of a column, without the non-null
// marker. Array columns wrap their element type in a list.
func GraphQLType(c introspect.Column) string {
	if IsArray(c) {
		return "[" + GraphQLType(introspect.Column{DataType: elementType(c)}) + "]"
	}
	return graphqlScalar(Classify(c.DataType))
}

func graphqlScalar(f Family) string {
	switch f {
	case FamilyInteger:
		return "Int"
	case FamilyFloat:
		return "Float"
	case FamilyBoolean:
		return "Boolean"
	case FamilyText, FamilyTime, FamilyBytes:
		return "String"
	case FamilyUUID:
		return "ID"
	default:
		return "JSON"
	}
}

// GraphQLDocument renders the whole schema as one SDL document: a JSON
// scalar declaration, one object type per table and a Query root exposing
// a list field per table.
func GraphQLDocument(tables []introspect.Table, exports []Export) string {
	var b strings.Builder
	b.WriteString("scalar JSON\n")
	for i, t := range tables {
		b.WriteString("\n")
		if t.Comment != "" {
			fmt.Fprintf(&b, "\"\"\"%s\"\"\"\n", t.Comment)
		}
		fmt.Fprintf(&b, "type %s {\n", exports[i].Name)
		for _, c := range t.Columns {
			if c.Comment != "" {
				fmt.Fprintf(&b, "  \"\"\"%s\"\"\"\n", c.Comment)
			}
			typ := GraphQLType(c)
			if !c.Nullable {
				typ += "!"
			}
			fmt.Fprintf(&b, "  %s: %s\n", c.Name, typ)
		}
		b.WriteString("}\n")
	}
	if len(tables) > 0 {
		b.WriteString("\ntype Query {\n")
		for i, t := range tables {
			fmt.Fprintf(&b, "  %s: [%s!]!\n", t.Name, exports[i].Name)
		}
		b.WriteString("}\n")
	}
	return b.String()
}
