package introspect

import (
	"context"
	"fmt"

	"github.com/syssam/pgforge"
	"github.com/syssam/pgforge/dialect"
	"github.com/syssam/pgforge/dialect/sql"
)

// Catalog queries. Each one is parameterized on the schema (and table)
// name and relies on the catalog's ordering guarantees: tables list
// alphabetically, columns by ordinal position, key columns by their
// position within the key.
const (
	tablesQuery = `SELECT c.relname, obj_description(c.oid, 'pg_class')
FROM pg_catalog.pg_class c
JOIN pg_catalog.pg_namespace n ON n.oid = c.relnamespace
WHERE c.relkind = 'r' AND n.nspname = $1
ORDER BY c.relname`

	columnsQuery = `SELECT column_name, data_type, udt_name, is_nullable = 'YES',
column_default, character_maximum_length, numeric_precision, numeric_scale,
col_description(format('%I.%I', table_schema, table_name)::regclass::oid, ordinal_position)
FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2
ORDER BY ordinal_position`

	primaryKeysQuery = `SELECT kcu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = $1 AND tc.table_name = $2
ORDER BY kcu.ordinal_position`

	foreignKeysQuery = `SELECT kcu.column_name, ccu.table_name, ccu.column_name,
rc.update_rule, rc.delete_rule
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
  ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1 AND tc.table_name = $2
ORDER BY kcu.ordinal_position`

	indexesQuery = `SELECT i.relname, a.attname, ix.indisunique, ix.indisprimary
FROM pg_catalog.pg_class t
JOIN pg_catalog.pg_namespace n ON n.oid = t.relnamespace
JOIN pg_catalog.pg_index ix ON ix.indrelid = t.oid
JOIN pg_catalog.pg_class i ON i.oid = ix.indexrelid
JOIN pg_catalog.pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(ix.indkey)
WHERE n.nspname = $1 AND t.relname = $2
ORDER BY i.relname, a.attnum`
)

// Inspector reads catalog metadata for one schema. Each method issues an
// independent, sequential round trip; a failing round trip aborts the
// remaining iteration and the error propagates to the caller.
type Inspector struct {
	conn   dialect.ExecQuerier
	schema string
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithSchema scopes the inspector to the given schema. Default is "public".
func WithSchema(schema string) InspectorOption {
	return func(i *Inspector) {
		i.schema = schema
	}
}

// NewInspector returns an Inspector over the given connection.
func NewInspector(conn dialect.ExecQuerier, opts ...InspectorOption) *Inspector {
	i := &Inspector{conn: conn, schema: "public"}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SchemaName returns the schema the inspector is scoped to.
func (i *Inspector) SchemaName() string {
	return i.schema
}

// Tables enumerates the schema's tables in alphabetical order, one row per
// table with its stored comment when present.
func (i *Inspector) Tables(ctx context.Context) ([]TableInfo, error) {
	rows := &sql.Rows{}
	if err := i.conn.Query(ctx, tablesQuery, []any{i.schema}, rows); err != nil {
		return nil, fmt.Errorf("introspect: list tables: %w", err)
	}
	defer rows.Close()
	var infos []TableInfo
	for rows.Next() {
		var (
			info    TableInfo
			comment sql.NullString
		)
		if err := rows.Scan(&info.Name, &comment); err != nil {
			return nil, fmt.Errorf("introspect: scan table row: %w", err)
		}
		info.Comment = comment.String
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: list tables: %w", err)
	}
	return infos, nil
}

// Columns returns the table's column descriptors in declaration order.
func (i *Inspector) Columns(ctx context.Context, table string) ([]Column, error) {
	rows := &sql.Rows{}
	if err := i.conn.Query(ctx, columnsQuery, []any{i.schema, table}, rows); err != nil {
		return nil, fmt.Errorf("introspect: columns of %q: %w", table, err)
	}
	defer rows.Close()
	var columns []Column
	for rows.Next() {
		var (
			c                        Column
			def, comment             sql.NullString
			length, precision, scale sql.NullInt64
		)
		if err := rows.Scan(&c.Name, &c.DataType, &c.UDTName, &c.Nullable, &def, &length, &precision, &scale, &comment); err != nil {
			return nil, fmt.Errorf("introspect: scan column row: %w", err)
		}
		c.Default, c.HasDefault = def.String, def.Valid
		c.MaxLength = length.Int64
		c.Precision = precision.Int64
		c.Scale = scale.Int64
		c.Comment = comment.String
		columns = append(columns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: columns of %q: %w", table, err)
	}
	return columns, nil
}

// PrimaryKeys returns the table's primary-key column names in key order.
func (i *Inspector) PrimaryKeys(ctx context.Context, table string) ([]string, error) {
	rows := &sql.Rows{}
	if err := i.conn.Query(ctx, primaryKeysQuery, []any{i.schema, table}, rows); err != nil {
		return nil, fmt.Errorf("introspect: primary keys of %q: %w", table, err)
	}
	defer rows.Close()
	var keys []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("introspect: scan primary key row: %w", err)
		}
		keys = append(keys, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: primary keys of %q: %w", table, err)
	}
	return keys, nil
}

// ForeignKeys returns the table's foreign-key references.
func (i *Inspector) ForeignKeys(ctx context.Context, table string) ([]ForeignKey, error) {
	rows := &sql.Rows{}
	if err := i.conn.Query(ctx, foreignKeysQuery, []any{i.schema, table}, rows); err != nil {
		return nil, fmt.Errorf("introspect: foreign keys of %q: %w", table, err)
	}
	defer rows.Close()
	var fks []ForeignKey
	for rows.Next() {
		var fk ForeignKey
		if err := rows.Scan(&fk.Column, &fk.RefTable, &fk.RefColumn, &fk.OnUpdate, &fk.OnDelete); err != nil {
			return nil, fmt.Errorf("introspect: scan foreign key row: %w", err)
		}
		fks = append(fks, fk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: foreign keys of %q: %w", table, err)
	}
	return fks, nil
}

// Indexes returns the table's (index, column) associations.
func (i *Inspector) Indexes(ctx context.Context, table string) ([]Index, error) {
	rows := &sql.Rows{}
	if err := i.conn.Query(ctx, indexesQuery, []any{i.schema, table}, rows); err != nil {
		return nil, fmt.Errorf("introspect: indexes of %q: %w", table, err)
	}
	defer rows.Close()
	var indexes []Index
	for rows.Next() {
		var idx Index
		if err := rows.Scan(&idx.Name, &idx.Column, &idx.Unique, &idx.Primary); err != nil {
			return nil, fmt.Errorf("introspect: scan index row: %w", err)
		}
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("introspect: indexes of %q: %w", table, err)
	}
	return indexes, nil
}

// Table returns the fully hydrated descriptor of one table, or a
// TableNotFoundError when the table is absent from the catalog listing.
func (i *Inspector) Table(ctx context.Context, name string) (Table, error) {
	infos, err := i.Tables(ctx)
	if err != nil {
		return Table{}, err
	}
	for _, info := range infos {
		if info.Name == name {
			return i.hydrate(ctx, info)
		}
	}
	return Table{}, pgforge.NewTableNotFoundError(i.schema, name)
}

// Schema returns all tables of the schema, fully hydrated, in listing
// order. Round trips are strictly sequential: the first failure aborts the
// remaining iteration.
func (i *Inspector) Schema(ctx context.Context) ([]Table, error) {
	infos, err := i.Tables(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]Table, 0, len(infos))
	for _, info := range infos {
		t, err := i.hydrate(ctx, info)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (i *Inspector) hydrate(ctx context.Context, info TableInfo) (Table, error) {
	t := Table{Name: info.Name, Comment: info.Comment}
	var err error
	if t.Columns, err = i.Columns(ctx, info.Name); err != nil {
		return Table{}, err
	}
	if t.PrimaryKeys, err = i.PrimaryKeys(ctx, info.Name); err != nil {
		return Table{}, err
	}
	if t.ForeignKeys, err = i.ForeignKeys(ctx, info.Name); err != nil {
		return Table{}, err
	}
	if t.Indexes, err = i.Indexes(ctx, info.Name); err != nil {
		return Table{}, err
	}
	return t, nil
}
