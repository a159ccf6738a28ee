// Package sql provides the parameterized statement assembler, the value
// codec and the database/sql-backed driver implementation for pgforge.
//
// # Builder
//
// Builder is a per-table statement builder. Clause methods chain and a
// terminal operation selects the statement kind; Query renders the final
// SQL text plus its positional parameter list:
//
//	b := sql.NewBuilder("users")
//	b.Select("id", "name").
//	    Where(sql.Filter{"status": sql.Filter{"$in": []string{"active", "pending"}}}).
//	    OrderBy("name", sql.Asc).
//	    Limit(10)
//	query, params, err := b.Query()
//	// SELECT "id", "name" FROM "users" WHERE "status" IN ($1, $2) ORDER BY "name" ASC LIMIT 10
//	// params: ["active", "pending"]
//
// Every placeholder $N in the rendered text corresponds to exactly the Nth
// parameter; numbering is monotonic and gapless across all payload values
// and conditions of one statement. Clear resets everything but the table
// name so a builder can be reused for successive independent statements.
//
// # Conditions
//
// Filter is a declarative condition: column to scalar (implicit equality),
// nil (IS NULL) or an operator object keyed by $eq, $neq, $gt, $gte, $lt,
// $lte, $like, $in, $nin and $isNull. Fragments combine with AND only.
//
// # Value Codec
//
// EscapeIdentifier, EscapeString, FormatArray, ParseArray and Placeholders
// implement the shared value-encoding discipline. FormatArray and
// ParseArray round-trip flat Postgres array literals; nested arrays and
// backslash escapes are not supported.
//
// # Driver
//
// Open, OpenDB, Conn, Tx and Rows adapt database/sql to the
// dialect.ExecQuerier contract consumed by the introspection pipeline.
// StatsDriver adds query statistics and slow query detection on top.
package sql
