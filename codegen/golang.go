package codegen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"

	"github.com/syssam/pgforge/introspect"
)

// goType returns the jennifer statement for a column's Go type. Nullable
// columns render as pointers; array columns as slices of their element
// type.
func goType(c introspect.Column) *jen.Statement {
	if IsArray(c) {
		return jen.Index().Add(goType(introspect.Column{DataType: elementType(c)}))
	}
	base := goScalar(Classify(c.DataType))
	if c.Nullable {
		return jen.Op("*").Add(base)
	}
	return base
}

func goScalar(f Family) *jen.Statement {
	switch f {
	case FamilyInteger:
		return jen.Int64()
	case FamilyFloat:
		return jen.Float64()
	case FamilyBoolean:
		return jen.Bool()
	case FamilyText:
		return jen.String()
	case FamilyTime:
		return jen.Qual("time", "Time")
	case FamilyJSON:
		return jen.Map(jen.String()).Any()
	case FamilyUUID:
		return jen.Qual("github.com/google/uuid", "UUID")
	case FamilyBytes:
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

// GoFile renders one Go source file declaring a struct per table, with db
// tags and doc comments, formatted through goimports.
func GoFile(pkg string, tables []introspect.Table, exports []Export) (string, error) {
	f := jen.NewFile(pkg)
	f.HeaderComment("Code generated by pgforge. DO NOT EDIT.")
	for i, t := range tables {
		name := exports[i].Name
		comment := fmt.Sprintf("%s is the row shape of table %q.", name, t.Name)
		if t.Comment != "" {
			comment += " " + t.Comment
		}
		f.Comment(comment)
		f.Type().Id(name).StructFunc(func(g *jen.Group) {
			for _, c := range t.Columns {
				if lines := columnDocLines(t, c); len(lines) > 0 {
					g.Comment(strings.Join(lines, "; "))
				}
				g.Id(InterfaceName(c.Name)).Add(goType(c)).Tag(map[string]string{"db": c.Name})
			}
		})
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("codegen: render go file: %w", err)
	}
	out, err := imports.Process("", buf.Bytes(), nil)
	if err != nil {
		return "", fmt.Errorf("codegen: format go file: %w", err)
	}
	return string(out), nil
}
