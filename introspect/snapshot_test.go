package introspect

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	tables := []Table{
		{
			Name:    "kv_store",
			Comment: "key/value pairs",
			Columns: []Column{
				{Name: "name", DataType: "text", UDTName: "text"},
				{Name: "value", DataType: "jsonb", UDTName: "jsonb", Nullable: true},
			},
			PrimaryKeys: []string{"name"},
			Indexes:     []Index{{Name: "kv_store_pkey", Column: "name", Unique: true, Primary: true}},
		},
	}
	snap := NewSnapshot("public", tables)
	require.NoError(t, uuid.Validate(snap.ID))
	assert.False(t, snap.TakenAt.IsZero())

	data, err := snap.Encode()
	require.NoError(t, err)

	got, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, "public", got.Schema)
	assert.Equal(t, tables, got.Tables)
}

func TestDecodeSnapshotGarbage(t *testing.T) {
	_, err := DecodeSnapshot([]byte("not msgpack"))
	require.Error(t, err)
}
