package codegen

import (
	"fmt"

	"github.com/go-openapi/inflect"

	"github.com/syssam/pgforge/introspect"
)

// InterfaceName derives the exported type name for a table: underscore
// segments are capitalized and concatenated, so "kv_store_copy" becomes
// "KvStoreCopy". The derivation is deterministic and does not deduplicate;
// two tables differing only by underscore placement may collide, which the
// export map resolves with numeric suffixes.
func InterfaceName(table string) string {
	return inflect.Camelize(table)
}

// Export pairs a table with its deduplicated interface name.
type Export struct {
	Table string
	Name  string
}

// Exports derives the named-export map from table name to interface name,
// in encounter order. When two tables derive the same interface name, the
// later ones are suffixed _2, _3 and so on.
func Exports(tables []introspect.Table) []Export {
	seen := make(map[string]int, len(tables))
	exports := make([]Export, len(tables))
	for i, t := range tables {
		name := InterfaceName(t.Name)
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		exports[i] = Export{Table: t.Name, Name: name}
	}
	return exports
}
