// Package introspect reads a PostgreSQL database's catalog metadata and
// reconstructs table, column, key and index structure as immutable
// descriptor snapshots.
//
// The Inspector consumes the database exclusively through the
// dialect.ExecQuerier contract and performs strictly sequential round
// trips: one call to enumerate tables, then for each table in listing
// order a fixed series of calls for columns, primary keys, foreign keys
// and indexes. Descriptors are created fresh per call; nothing is cached.
//
//	drv, err := sql.Open(dialect.Postgres, dsn)
//	if err != nil { ... }
//	inspector := introspect.NewInspector(drv)
//	tables, err := inspector.Schema(ctx)
package introspect
