package introspect

// Column describes a single table column as reported by the catalog.
// It is an immutable snapshot; introspection never mutates a descriptor
// after returning it.
type Column struct {
	// Name is the column name.
	Name string
	// DataType is the raw catalog type, e.g. "integer", "character varying"
	// or "ARRAY" for array columns.
	DataType string
	// UDTName is the underlying type name, e.g. "int4" or "_int4" for an
	// integer array. It carries the element type hint for arrays.
	UDTName string
	// Nullable reports whether the column accepts NULL.
	Nullable bool
	// Default is the default-value text. Valid only when HasDefault is set.
	Default string
	// HasDefault reports whether the column declares a default value.
	HasDefault bool
	// MaxLength is the declared character length, or zero.
	MaxLength int64
	// Precision is the declared numeric precision, or zero.
	Precision int64
	// Scale is the declared numeric scale, or zero.
	Scale int64
	// Comment is the column's stored comment, or empty.
	Comment string
}

// ForeignKey describes one foreign-key column reference.
type ForeignKey struct {
	// Column is the referencing column.
	Column string
	// RefTable and RefColumn identify the referenced column.
	RefTable  string
	RefColumn string
	// OnUpdate and OnDelete are the referential action rules,
	// e.g. "CASCADE" or "NO ACTION".
	OnUpdate string
	OnDelete string
}

// Index describes one (index, column) association.
type Index struct {
	// Name is the index name.
	Name string
	// Column is the indexed column.
	Column string
	// Unique reports whether the index enforces uniqueness.
	Unique bool
	// Primary reports whether the index backs the primary key.
	Primary bool
}

// TableInfo is one row of the table listing.
type TableInfo struct {
	// Name is the table name.
	Name string
	// Comment is the table's stored comment, or empty.
	Comment string
}

// Table is the full descriptor of a single table: its columns in
// declaration order, primary-key columns in key order, foreign keys and
// indexes.
type Table struct {
	Name        string
	Comment     string
	Columns     []Column
	PrimaryKeys []string
	ForeignKeys []ForeignKey
	Indexes     []Index
}

// Column returns the column descriptor with the given name, if present.
func (t Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// IsPrimary reports whether the named column is part of the primary key.
func (t Table) IsPrimary(name string) bool {
	for _, pk := range t.PrimaryKeys {
		if pk == name {
			return true
		}
	}
	return false
}
