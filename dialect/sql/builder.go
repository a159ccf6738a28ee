package sql

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/pgforge"
)

// Kind is the statement kind selected by the last terminal builder operation.
type Kind uint8

// Statement kinds.
const (
	KindNone Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the SQL verb of the kind.
func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "SELECT"
	case KindInsert:
		return "INSERT"
	case KindUpdate:
		return "UPDATE"
	case KindDelete:
		return "DELETE"
	default:
		return "NONE"
	}
}

// Join kinds accepted by Builder.Join.
const (
	JoinInner = "INNER"
	JoinLeft  = "LEFT"
	JoinRight = "RIGHT"
	JoinFull  = "FULL"
)

// Sort directions accepted by Builder.OrderBy.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// Field is a single column/value assignment.
type Field struct {
	Column string
	Value  any
}

// Row is an ordered list of column assignments. Order matters: INSERT
// derives its column set from the first row in declaration order, and
// UPDATE renders one SET fragment per field in declaration order.
type Row []Field

// columns returns the column names of the row in declaration order.
func (r Row) columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Column
	}
	return cols
}

// value returns the value bound to the given column, or nil when the row
// does not carry it.
func (r Row) value(col string) any {
	for _, f := range r {
		if f.Column == col {
			return f.Value
		}
	}
	return nil
}

// conflict describes the ON CONFLICT extension of an INSERT statement.
type conflict struct {
	columns   []string // conflict target columns
	doNothing bool
	update    []string // DO UPDATE SET columns, bound to the first row
}

// state is the complete, explicit description of a statement under
// construction: the table, the query kind, the accumulated clause lists and
// the payload. Builder methods derive a new state from the previous one
// instead of mutating shared fields, so a state value can be copied or
// inspected safely at any point. Parameters are not part of the state;
// placeholder numbering happens once, at render time, in clause order.
type state struct {
	table    string
	kind     Kind
	columns  []string
	joins    []string
	conds    []condition
	groups   []string
	orders   []string
	limit    *int
	offset   *int
	rows     []Row
	sets     Row
	conflict *conflict
	err      error
}

// Builder assembles a parameterized statement for a single table. It is a
// thin chaining wrapper around an explicit state value. A Builder is a
// mutable, single-owner object: sharing one instance across concurrent
// tasks is undefined behavior.
type Builder struct {
	s state
}

// NewBuilder returns a statement builder bound to the given table.
func NewBuilder(table string) *Builder {
	return &Builder{s: state{table: table}}
}

// Table reassigns the table the builder renders against.
func (b *Builder) Table(name string) *Builder {
	b.s.table = name
	return b
}

// Select sets the statement kind to SELECT and appends result columns.
// With no accumulated columns the statement selects *.
func (b *Builder) Select(columns ...string) *Builder {
	b.s = b.s.withSelect(columns)
	return b
}

// Join appends a join clause rendered as `<KIND> JOIN "<table>" ON <on>`,
// in insertion order. The on-condition text is passed through verbatim.
func (b *Builder) Join(kind, table, on string) *Builder {
	b.s = b.s.withJoin(kind, table, on)
	return b
}

// Where appends a declarative filter. Multiple calls append additional
// AND groups; there is no OR support.
func (b *Builder) Where(f Filter) *Builder {
	b.s = b.s.withCondition(condition{filter: f})
	return b
}

// WhereRaw appends a raw SQL fragment to the WHERE clause, verbatim.
// Injection safety of the fragment is the caller's responsibility.
func (b *Builder) WhereRaw(fragment string) *Builder {
	b.s = b.s.withCondition(condition{raw: fragment})
	return b
}

// GroupBy appends GROUP BY columns.
func (b *Builder) GroupBy(columns ...string) *Builder {
	b.s = b.s.withGroupBy(columns)
	return b
}

// OrderBy appends an ORDER BY term. Direction defaults to ASC.
func (b *Builder) OrderBy(column, direction string) *Builder {
	b.s = b.s.withOrderBy(column, direction)
	return b
}

// Limit sets the LIMIT clause.
func (b *Builder) Limit(n int) *Builder {
	b.s = b.s.withLimit(n)
	return b
}

// Offset sets the OFFSET clause.
func (b *Builder) Offset(n int) *Builder {
	b.s = b.s.withOffset(n)
	return b
}

// Insert sets the statement kind to INSERT with a single row payload.
func (b *Builder) Insert(row Row) *Builder {
	return b.InsertMany([]Row{row})
}

// InsertMany sets the statement kind to INSERT with a multi-row payload.
// All rows share the column set derived from the first row.
func (b *Builder) InsertMany(rows []Row) *Builder {
	b.s = b.s.withInsert(rows)
	return b
}

// OnConflict sets the conflict target columns of an upsert. It must be
// followed by DoNothing or DoUpdate.
func (b *Builder) OnConflict(columns ...string) *Builder {
	b.s = b.s.withConflict(columns)
	return b
}

// DoNothing makes the upsert ignore conflicting rows.
func (b *Builder) DoNothing() *Builder {
	b.s = b.s.withDoNothing()
	return b
}

// DoUpdate makes the upsert overwrite the listed columns on conflict.
// Values are taken from the first inserted row only; this is a documented
// constraint, not a general multi-row upsert.
func (b *Builder) DoUpdate(columns ...string) *Builder {
	b.s = b.s.withDoUpdate(columns)
	return b
}

// Update sets the statement kind to UPDATE with the given payload.
func (b *Builder) Update(row Row) *Builder {
	b.s = b.s.withUpdate(row)
	return b
}

// Delete sets the statement kind to DELETE.
func (b *Builder) Delete() *Builder {
	b.s.kind = KindDelete
	return b
}

// Clear resets every accumulated field except the table name, enabling
// builder reuse across successive independent statements.
func (b *Builder) Clear() *Builder {
	b.s = state{table: b.s.table}
	return b
}

// SQL renders the statement text, discarding the parameters.
func (b *Builder) SQL() (string, error) {
	query, _, err := b.s.render()
	return query, err
}

// Query renders the statement and returns an immutable snapshot of the SQL
// text and the positional parameter list. Every placeholder $N in the text
// corresponds to exactly the Nth parameter.
func (b *Builder) Query() (string, []any, error) {
	return b.s.render()
}

func (s state) fail(err error) state {
	if s.err == nil {
		s.err = err
	}
	return s
}

func (s state) withSelect(columns []string) state {
	s.kind = KindSelect
	s.columns = append(slices.Clone(s.columns), columns...)
	return s
}

func (s state) withJoin(kind, table, on string) state {
	kind = strings.ToUpper(kind)
	switch kind {
	case JoinInner, JoinLeft, JoinRight, JoinFull:
	default:
		return s.fail(pgforge.NewUnsupportedOperationError(kind + " JOIN"))
	}
	clause := fmt.Sprintf("%s JOIN %s ON %s", kind, EscapeIdentifier(table), on)
	s.joins = append(slices.Clone(s.joins), clause)
	return s
}

func (s state) withCondition(c condition) state {
	s.conds = append(slices.Clone(s.conds), c)
	return s
}

func (s state) withGroupBy(columns []string) state {
	groups := slices.Clone(s.groups)
	for _, col := range columns {
		groups = append(groups, EscapeIdentifier(col))
	}
	s.groups = groups
	return s
}

func (s state) withOrderBy(column, direction string) state {
	switch strings.ToUpper(direction) {
	case Desc:
		direction = Desc
	default:
		direction = Asc
	}
	s.orders = append(slices.Clone(s.orders), EscapeIdentifier(column)+" "+direction)
	return s
}

func (s state) withLimit(n int) state {
	s.limit = &n
	return s
}

func (s state) withOffset(n int) state {
	s.offset = &n
	return s
}

func (s state) withInsert(rows []Row) state {
	s.kind = KindInsert
	s.rows = rows
	return s
}

func (s state) withConflict(columns []string) state {
	s.conflict = &conflict{columns: columns}
	return s
}

func (s state) withDoNothing() state {
	if s.conflict == nil {
		s.conflict = &conflict{}
	}
	c := *s.conflict
	c.doNothing = true
	c.update = nil
	s.conflict = &c
	return s
}

func (s state) withDoUpdate(columns []string) state {
	if s.conflict == nil {
		s.conflict = &conflict{}
	}
	c := *s.conflict
	c.doNothing = false
	c.update = columns
	s.conflict = &c
	return s
}

func (s state) withUpdate(row Row) state {
	s.kind = KindUpdate
	s.sets = row
	return s
}

// render dispatches on the query kind and produces the final SQL text plus
// the positional parameter list.
func (s state) render() (string, []any, error) {
	if s.err != nil {
		return "", nil, s.err
	}
	switch s.kind {
	case KindSelect:
		return s.renderSelect()
	case KindInsert:
		return s.renderInsert()
	case KindUpdate:
		return s.renderUpdate()
	case KindDelete:
		return s.renderDelete()
	default:
		return "", nil, pgforge.NewUnsupportedOperationError("render without statement kind")
	}
}

func (s state) renderSelect() (string, []any, error) {
	var b strings.Builder
	b.WriteString("SELECT ")
	if len(s.columns) == 0 {
		b.WriteString("*")
	} else {
		cols := make([]string, len(s.columns))
		for i, col := range s.columns {
			cols[i] = EscapeIdentifier(col)
		}
		b.WriteString(strings.Join(cols, ", "))
	}
	b.WriteString(" FROM ")
	b.WriteString(EscapeIdentifier(s.table))
	for _, join := range s.joins {
		b.WriteString(" ")
		b.WriteString(join)
	}
	params, err := s.renderWhere(&b, nil)
	if err != nil {
		return "", nil, err
	}
	if len(s.groups) > 0 {
		b.WriteString(" GROUP BY ")
		b.WriteString(strings.Join(s.groups, ", "))
	}
	if len(s.orders) > 0 {
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(s.orders, ", "))
	}
	if s.limit != nil {
		fmt.Fprintf(&b, " LIMIT %d", *s.limit)
	}
	if s.offset != nil {
		fmt.Fprintf(&b, " OFFSET %d", *s.offset)
	}
	return b.String(), params, nil
}

func (s state) renderInsert() (string, []any, error) {
	if len(s.rows) == 0 || len(s.rows[0]) == 0 {
		return "", nil, pgforge.NewMissingDataError("INSERT")
	}
	columns := s.rows[0].columns()
	escaped := make([]string, len(columns))
	for i, col := range columns {
		escaped[i] = EscapeIdentifier(col)
	}
	var (
		b      strings.Builder
		params []any
	)
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", EscapeIdentifier(s.table), strings.Join(escaped, ", "))
	for i, row := range s.rows {
		if i > 0 {
			b.WriteString(", ")
		}
		for _, col := range columns {
			params = append(params, row.value(col))
		}
		fmt.Fprintf(&b, "(%s)", PlaceholdersFrom(len(columns), len(params)-len(columns)+1))
	}
	if s.conflict != nil {
		b.WriteString(" ON CONFLICT (")
		targets := make([]string, len(s.conflict.columns))
		for i, col := range s.conflict.columns {
			targets[i] = EscapeIdentifier(col)
		}
		b.WriteString(strings.Join(targets, ", "))
		b.WriteString(")")
		switch {
		case s.conflict.doNothing:
			b.WriteString(" DO NOTHING")
		case len(s.conflict.update) > 0:
			b.WriteString(" DO UPDATE SET ")
			for i, col := range s.conflict.update {
				if i > 0 {
					b.WriteString(", ")
				}
				// Update values come from the first row only.
				params = append(params, s.rows[0].value(col))
				fmt.Fprintf(&b, "%s = $%d", EscapeIdentifier(col), len(params))
			}
		default:
			return "", nil, pgforge.NewUnsupportedOperationError("ON CONFLICT without action")
		}
	}
	return b.String(), params, nil
}

func (s state) renderUpdate() (string, []any, error) {
	if len(s.sets) == 0 {
		return "", nil, pgforge.NewMissingDataError("UPDATE")
	}
	var (
		b      strings.Builder
		params []any
	)
	fmt.Fprintf(&b, "UPDATE %s SET ", EscapeIdentifier(s.table))
	for i, f := range s.sets {
		if i > 0 {
			b.WriteString(", ")
		}
		params = append(params, f.Value)
		fmt.Fprintf(&b, "%s = $%d", EscapeIdentifier(f.Column), len(params))
	}
	params, err := s.renderWhere(&b, params)
	if err != nil {
		return "", nil, err
	}
	return b.String(), params, nil
}

func (s state) renderDelete() (string, []any, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "DELETE FROM %s", EscapeIdentifier(s.table))
	params, err := s.renderWhere(&b, nil)
	if err != nil {
		return "", nil, err
	}
	return b.String(), params, nil
}

// renderWhere renders the accumulated conditions, if any, continuing the
// placeholder numbering from the parameters pushed so far.
func (s state) renderWhere(b *strings.Builder, params []any) ([]any, error) {
	if len(s.conds) == 0 {
		return params, nil
	}
	frags, params, err := renderConditions(s.conds, params)
	if err != nil {
		return nil, err
	}
	if len(frags) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(frags, " AND "))
	}
	return params, nil
}
