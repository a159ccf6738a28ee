package sql

import (
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/syssam/pgforge"
)

// Operator keys accepted in a Filter operator object.
const (
	OpEQ     = "$eq"
	OpNEQ    = "$neq"
	OpGT     = "$gt"
	OpGTE    = "$gte"
	OpLT     = "$lt"
	OpLTE    = "$lte"
	OpLike   = "$like"
	OpIn     = "$in"
	OpNotIn  = "$nin"
	OpIsNull = "$isNull"
)

// opOrder fixes the evaluation order of operator keys within one object.
var opOrder = []string{OpEQ, OpNEQ, OpGT, OpGTE, OpLT, OpLTE, OpLike, OpIn, OpNotIn, OpIsNull}

// opSQL maps binary operator keys to their SQL spelling.
var opSQL = map[string]string{
	OpEQ:   "=",
	OpNEQ:  "<>",
	OpGT:   ">",
	OpGTE:  ">=",
	OpLT:   "<",
	OpLTE:  "<=",
	OpLike: "LIKE",
}

// Filter is a declarative condition: a mapping from column name to either a
// scalar (implicit equality), nil (IS NULL, consuming no parameter), or an
// operator object keyed by $eq, $neq, $gt, $gte, $lt, $lte, $like, $in,
// $nin and $isNull.
//
// Columns are evaluated in sorted name order so that rendering is
// deterministic; operator keys within one object are evaluated in the
// fixed order above. All fragments of one Filter combine with AND.
// An empty $in set renders a constant FALSE fragment and an empty $nin
// set a constant TRUE, since IN () is not valid SQL.
type Filter map[string]any

// condition is one accumulated WHERE entry: either a raw fragment passed
// through verbatim or a Filter rendered at statement-build time.
type condition struct {
	raw    string
	filter Filter
}

// renderConditions renders the accumulated conditions into SQL fragments,
// appending bound values to params. Placeholder numbering continues from
// len(params)+1, so numbering stays monotonic and gapless across payload
// values and conditions rendered before this call.
func renderConditions(conds []condition, params []any) ([]string, []any, error) {
	var frags []string
	for _, c := range conds {
		if c.raw != "" {
			frags = append(frags, c.raw)
			continue
		}
		var err error
		frags, params, err = renderFilter(c.filter, frags, params)
		if err != nil {
			return nil, nil, err
		}
	}
	return frags, params, nil
}

func renderFilter(f Filter, frags []string, params []any) ([]string, []any, error) {
	for _, col := range slices.Sorted(maps.Keys(f)) {
		switch v := f[col].(type) {
		case nil:
			frags = append(frags, EscapeIdentifier(col)+" IS NULL")
		case Filter:
			var err error
			frags, params, err = renderOps(col, v, frags, params)
			if err != nil {
				return nil, nil, err
			}
		case map[string]any:
			var err error
			frags, params, err = renderOps(col, v, frags, params)
			if err != nil {
				return nil, nil, err
			}
		default:
			params = append(params, v)
			frags = append(frags, fmt.Sprintf("%s = $%d", EscapeIdentifier(col), len(params)))
		}
	}
	return frags, params, nil
}

func renderOps(col string, ops map[string]any, frags []string, params []any) ([]string, []any, error) {
	for key := range ops {
		if !slices.Contains(opOrder, key) {
			return nil, nil, pgforge.NewUnsupportedOperationError(key)
		}
	}
	for _, key := range opOrder {
		v, ok := ops[key]
		if !ok {
			continue
		}
		switch key {
		case OpIn, OpNotIn:
			items, err := sliceValues(v)
			if err != nil {
				return nil, nil, err
			}
			if len(items) == 0 {
				// IN () is a syntax error in Postgres. An empty set matches
				// nothing; its complement matches everything.
				if key == OpIn {
					frags = append(frags, "FALSE")
				} else {
					frags = append(frags, "TRUE")
				}
				continue
			}
			params = append(params, items...)
			// The consecutive parameter block was just pushed; address it
			// from the current length minus the element count.
			tokens := PlaceholdersFrom(len(items), len(params)-len(items)+1)
			kw := "IN"
			if key == OpNotIn {
				kw = "NOT IN"
			}
			frags = append(frags, fmt.Sprintf("%s %s (%s)", EscapeIdentifier(col), kw, tokens))
		case OpIsNull:
			isNull, _ := v.(bool)
			if isNull {
				frags = append(frags, EscapeIdentifier(col)+" IS NULL")
			} else {
				frags = append(frags, EscapeIdentifier(col)+" IS NOT NULL")
			}
		default:
			params = append(params, v)
			frags = append(frags, fmt.Sprintf("%s %s $%d", EscapeIdentifier(col), opSQL[key], len(params)))
		}
	}
	return frags, params, nil
}

// sliceValues flattens a slice or array of any element type into []any.
func sliceValues(v any) ([]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("dialect/sql: invalid type %T for $in/$nin. expect a slice", v)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}
