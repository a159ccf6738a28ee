package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/pgforge/introspect"
)

func usersTable() introspect.Table {
	return introspect.Table{
		Name:    "users",
		Comment: "registered accounts",
		Columns: []introspect.Column{
			{Name: "id", DataType: "integer", UDTName: "int4", HasDefault: true, Default: "nextval('users_id_seq'::regclass)"},
			{Name: "email", DataType: "character varying", UDTName: "varchar", Comment: "unique login"},
			{Name: "bio", DataType: "text", UDTName: "text", Nullable: true},
			{Name: "tags", DataType: "ARRAY", UDTName: "_text", Nullable: true},
			{Name: "settings", DataType: "jsonb", UDTName: "jsonb"},
			{Name: "avatar", DataType: "bytea", UDTName: "bytea", Nullable: true},
		},
		PrimaryKeys: []string{"id"},
	}
}

func TestTSType(t *testing.T) {
	tests := []struct {
		column introspect.Column
		want   string
	}{
		{introspect.Column{DataType: "integer"}, "number"},
		{introspect.Column{DataType: "numeric"}, "number"},
		{introspect.Column{DataType: "boolean"}, "boolean"},
		{introspect.Column{DataType: "text"}, "string"},
		{introspect.Column{DataType: "timestamp with time zone"}, "string"},
		{introspect.Column{DataType: "uuid"}, "string"},
		{introspect.Column{DataType: "jsonb"}, "Record<string, unknown>"},
		{introspect.Column{DataType: "bytea"}, "Buffer"},
		{introspect.Column{DataType: "tsvector"}, "any"},
		{introspect.Column{DataType: "ARRAY", UDTName: "_int4"}, "number[]"},
		{introspect.Column{DataType: "uuid[]"}, "string[]"},
	}
	for _, tt := range tests {
		t.Run(tt.want+"/"+tt.column.DataType, func(t *testing.T) {
			assert.Equal(t, tt.want, TSType(tt.column))
		})
	}
}

func TestTSInterface(t *testing.T) {
	out := TSInterface("Users", usersTable())
	assert.Equal(t, `/**
 * registered accounts
 */
export interface Users {
  /**
   * has default: nextval('users_id_seq'::regclass)
   * primary key
   */
  id: number;
  /**
   * unique login
   */
  email: string;
  /**
   * nullable
   */
  bio?: string | null;
  /**
   * nullable
   */
  tags?: string[] | null;
  settings: Record<string, unknown>;
  /**
   * nullable
   */
  avatar?: Buffer | null;
}
`, out)
}

func TestTSInterfaceNoDocs(t *testing.T) {
	tbl := introspect.Table{
		Name:    "plain",
		Columns: []introspect.Column{{Name: "n", DataType: "integer"}},
	}
	assert.Equal(t, "export interface Plain {\n  n: number;\n}\n", TSInterface("Plain", tbl))
}

func TestTSExportMap(t *testing.T) {
	out := tsExportMap([]Export{{Table: "users", Name: "Users"}, {Table: "kv__store", Name: "KvStore_2"}})
	assert.Equal(t, `export const tableInterfaces = {
  "users": "Users",
  "kv__store": "KvStore_2",
} as const;
`, out)
}
