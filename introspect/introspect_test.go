package introspect

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgforge"
	"github.com/syssam/pgforge/dialect"
	"github.com/syssam/pgforge/dialect/sql"
)

func newMockInspector(t *testing.T, opts ...InspectorOption) (*Inspector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewInspector(sql.OpenDB(dialect.Postgres, db), opts...), mock
}

func TestInspectorTables(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("SELECT c.relname").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}).
			AddRow("accounts", "user accounts").
			AddRow("kv_store", nil))

	tables, err := inspector.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TableInfo{
		{Name: "accounts", Comment: "user accounts"},
		{Name: "kv_store"},
	}, tables)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorSchemaScope(t *testing.T) {
	inspector, mock := newMockInspector(t, WithSchema("billing"))
	assert.Equal(t, "billing", inspector.SchemaName())

	mock.ExpectQuery("SELECT c.relname").
		WithArgs("billing").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}))

	tables, err := inspector.Tables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tables)
	require.NoError(t, mock.ExpectationsWereMet())
}

func columnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"column_name", "data_type", "udt_name", "nullable",
		"column_default", "character_maximum_length", "numeric_precision", "numeric_scale",
		"col_description",
	})
}

func TestInspectorColumns(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "kv_store").
		WillReturnRows(columnRows().
			AddRow("id", "integer", "int4", false, "nextval('kv_store_id_seq')", nil, 32, 0, nil).
			AddRow("name", "character varying", "varchar", false, nil, 255, nil, nil, "lookup key").
			AddRow("tags", "ARRAY", "_text", true, nil, nil, nil, nil, nil))

	columns, err := inspector.Columns(context.Background(), "kv_store")
	require.NoError(t, err)
	require.Len(t, columns, 3)

	assert.Equal(t, Column{
		Name: "id", DataType: "integer", UDTName: "int4",
		Default: "nextval('kv_store_id_seq')", HasDefault: true, Precision: 32,
	}, columns[0])
	assert.Equal(t, Column{
		Name: "name", DataType: "character varying", UDTName: "varchar",
		MaxLength: 255, Comment: "lookup key",
	}, columns[1])
	assert.Equal(t, Column{
		Name: "tags", DataType: "ARRAY", UDTName: "_text", Nullable: true,
	}, columns[2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorPrimaryKeys(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("PRIMARY KEY").
		WithArgs("public", "order_items").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).
			AddRow("order_id").
			AddRow("product_id"))

	keys, err := inspector.PrimaryKeys(context.Background(), "order_items")
	require.NoError(t, err)
	assert.Equal(t, []string{"order_id", "product_id"}, keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorForeignKeys(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("FOREIGN KEY").
		WithArgs("public", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "table_name", "ref_column", "update_rule", "delete_rule"}).
			AddRow("customer_id", "customers", "id", "NO ACTION", "CASCADE"))

	fks, err := inspector.ForeignKeys(context.Background(), "orders")
	require.NoError(t, err)
	assert.Equal(t, []ForeignKey{{
		Column: "customer_id", RefTable: "customers", RefColumn: "id",
		OnUpdate: "NO ACTION", OnDelete: "CASCADE",
	}}, fks)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorIndexes(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("pg_catalog.pg_index").
		WithArgs("public", "kv_store").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "attname", "indisunique", "indisprimary"}).
			AddRow("kv_store_pkey", "name", true, true).
			AddRow("kv_store_value_idx", "value", false, false))

	indexes, err := inspector.Indexes(context.Background(), "kv_store")
	require.NoError(t, err)
	assert.Equal(t, []Index{
		{Name: "kv_store_pkey", Column: "name", Unique: true, Primary: true},
		{Name: "kv_store_value_idx", Column: "value"},
	}, indexes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func expectHydration(mock sqlmock.Sqlmock, table string) {
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", table).
		WillReturnRows(columnRows().
			AddRow("name", "text", "text", false, nil, nil, nil, nil, nil).
			AddRow("value", "jsonb", "jsonb", true, nil, nil, nil, nil, nil))
	mock.ExpectQuery("PRIMARY KEY").
		WithArgs("public", table).
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("name"))
	mock.ExpectQuery("FOREIGN KEY").
		WithArgs("public", table).
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "table_name", "ref_column", "update_rule", "delete_rule"}))
	mock.ExpectQuery("pg_catalog.pg_index").
		WithArgs("public", table).
		WillReturnRows(sqlmock.NewRows([]string{"relname", "attname", "indisunique", "indisprimary"}).
			AddRow(table+"_pkey", "name", true, true))
}

func TestInspectorTable(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("SELECT c.relname").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}).AddRow("kv_store", nil))
	expectHydration(mock, "kv_store")

	table, err := inspector.Table(context.Background(), "kv_store")
	require.NoError(t, err)
	assert.Equal(t, "kv_store", table.Name)
	assert.Equal(t, []string{"name"}, table.PrimaryKeys)
	assert.True(t, table.IsPrimary("name"))
	assert.False(t, table.IsPrimary("value"))

	col, ok := table.Column("value")
	require.True(t, ok)
	assert.True(t, col.Nullable)
	_, ok = table.Column("missing")
	assert.False(t, ok)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorTableNotFound(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("SELECT c.relname").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}).AddRow("other", nil))

	_, err := inspector.Table(context.Background(), "kv_store")
	require.Error(t, err)
	assert.True(t, pgforge.IsTableNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorSchemaSequential(t *testing.T) {
	inspector, mock := newMockInspector(t)
	// Round trips happen in listing order, table by table: the mock is
	// order-sensitive, so this also pins the sequential contract.
	mock.ExpectQuery("SELECT c.relname").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}).
			AddRow("accounts", nil).
			AddRow("kv_store", nil))
	expectHydration(mock, "accounts")
	expectHydration(mock, "kv_store")

	tables, err := inspector.Schema(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "accounts", tables[0].Name)
	assert.Equal(t, "kv_store", tables[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectorSchemaAbortsOnError(t *testing.T) {
	inspector, mock := newMockInspector(t)
	mock.ExpectQuery("SELECT c.relname").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"relname", "obj_description"}).
			AddRow("accounts", nil).
			AddRow("kv_store", nil))
	mock.ExpectQuery("FROM information_schema.columns").
		WithArgs("public", "accounts").
		WillReturnError(errors.New("connection reset"))

	_, err := inspector.Schema(context.Background())
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet(), "no further round trips after the failure")
}
