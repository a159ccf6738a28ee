package codegen

import (
	"strings"

	"github.com/syssam/pgforge/introspect"
)

// Family is a closed enumeration of the known database type families.
// Classifying raw catalog strings into a tagged family first, and mapping
// families to target types second, keeps the mapping exhaustiveness
// checkable and guarantees a fallback for unrecognized types.
type Family int

// Known type families. FamilyUnknown is the guaranteed fallback.
const (
	FamilyUnknown Family = iota
	FamilyInteger
	FamilyFloat
	FamilyBoolean
	FamilyText
	FamilyTime
	FamilyJSON
	FamilyUUID
	FamilyBytes
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyInteger:
		return "integer"
	case FamilyFloat:
		return "float"
	case FamilyBoolean:
		return "boolean"
	case FamilyText:
		return "text"
	case FamilyTime:
		return "time"
	case FamilyJSON:
		return "json"
	case FamilyUUID:
		return "uuid"
	case FamilyBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Classify reports the type family of a raw catalog type name.
func Classify(raw string) Family {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "smallint", "integer", "bigint", "int", "int2", "int4", "int8",
		"smallserial", "serial", "bigserial", "oid":
		return FamilyInteger
	case "real", "double precision", "float4", "float8", "numeric", "decimal", "money":
		return FamilyFloat
	case "boolean", "bool":
		return FamilyBoolean
	case "character varying", "varchar", "character", "char", "bpchar", "text", "name", "citext":
		return FamilyText
	case "timestamp", "timestamptz", "timestamp without time zone", "timestamp with time zone",
		"date", "time", "timetz", "time without time zone", "time with time zone", "interval":
		return FamilyTime
	case "json", "jsonb":
		return FamilyJSON
	case "uuid":
		return FamilyUUID
	case "bytea":
		return FamilyBytes
	default:
		return FamilyUnknown
	}
}

// IsArray reports whether the column holds an array type: either the raw
// data type says ARRAY, or the type name carries an array marker.
func IsArray(c introspect.Column) bool {
	return strings.EqualFold(c.DataType, "ARRAY") ||
		strings.HasSuffix(c.DataType, "[]") ||
		strings.HasPrefix(c.UDTName, "_")
}

// elementType returns the raw element type name of an array column.
func elementType(c introspect.Column) string {
	if suffixed := strings.TrimSuffix(c.DataType, "[]"); suffixed != c.DataType {
		return suffixed
	}
	return strings.TrimPrefix(c.UDTName, "_")
}

// ColumnFamily classifies a column, resolving array columns to the family
// of their element type.
func ColumnFamily(c introspect.Column) Family {
	if IsArray(c) {
		return Classify(elementType(c))
	}
	return Classify(c.DataType)
}
