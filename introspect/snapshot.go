package introspect

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a portable, one-shot export of an introspected schema for
// consumption by downstream tooling. It is an output format, not a cache:
// generation never reads a snapshot back.
type Snapshot struct {
	// ID uniquely identifies the introspection run.
	ID string `msgpack:"id"`
	// Schema is the schema the tables were read from.
	Schema string `msgpack:"schema"`
	// TakenAt is the time the snapshot was assembled.
	TakenAt time.Time `msgpack:"taken_at"`
	// Tables are the fully hydrated descriptors, in listing order.
	Tables []Table `msgpack:"tables"`
}

// NewSnapshot assembles a snapshot of the given tables.
func NewSnapshot(schema string, tables []Table) *Snapshot {
	return &Snapshot{
		ID:      uuid.NewString(),
		Schema:  schema,
		TakenAt: time.Now().UTC(),
		Tables:  tables,
	}
}

// Encode serializes the snapshot with msgpack.
func (s *Snapshot) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("introspect: encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot deserializes a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("introspect: decode snapshot: %w", err)
	}
	return &s, nil
}
