package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgforge"
)

func TestRenderFilterScalar(t *testing.T) {
	frags, params, err := renderConditions([]condition{{filter: Filter{"name": "k"}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`"name" = $1`}, frags)
	assert.Equal(t, []any{"k"}, params)
}

func TestRenderFilterNilValue(t *testing.T) {
	frags, params, err := renderConditions([]condition{{filter: Filter{"deleted_at": nil}}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`"deleted_at" IS NULL`}, frags)
	assert.Empty(t, params, "IS NULL consumes no parameter slot")
}

func TestRenderFilterOperators(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantFrags  []string
		wantParams []any
	}{
		{
			name:       "eq",
			filter:     Filter{"age": Filter{"$eq": 30}},
			wantFrags:  []string{`"age" = $1`},
			wantParams: []any{30},
		},
		{
			name:       "neq",
			filter:     Filter{"age": Filter{"$neq": 30}},
			wantFrags:  []string{`"age" <> $1`},
			wantParams: []any{30},
		},
		{
			name:       "gt and lte on one column",
			filter:     Filter{"age": Filter{"$gt": 18, "$lte": 65}},
			wantFrags:  []string{`"age" > $1`, `"age" <= $2`},
			wantParams: []any{18, 65},
		},
		{
			name:       "like",
			filter:     Filter{"name": Filter{"$like": "%son"}},
			wantFrags:  []string{`"name" LIKE $1`},
			wantParams: []any{"%son"},
		},
		{
			name:       "in",
			filter:     Filter{"status": Filter{"$in": []string{"active", "pending"}}},
			wantFrags:  []string{`"status" IN ($1, $2)`},
			wantParams: []any{"active", "pending"},
		},
		{
			name:       "nin",
			filter:     Filter{"status": Filter{"$nin": []int{1, 2, 3}}},
			wantFrags:  []string{`"status" NOT IN ($1, $2, $3)`},
			wantParams: []any{1, 2, 3},
		},
		{
			name:      "isNull true",
			filter:    Filter{"deleted_at": Filter{"$isNull": true}},
			wantFrags: []string{`"deleted_at" IS NULL`},
		},
		{
			name:      "isNull false",
			filter:    Filter{"deleted_at": Filter{"$isNull": false}},
			wantFrags: []string{`"deleted_at" IS NOT NULL`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frags, params, err := renderConditions([]condition{{filter: tt.filter}}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrags, frags)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestRenderFilterEmptySet(t *testing.T) {
	t.Run("in matches nothing", func(t *testing.T) {
		frags, params, err := renderConditions([]condition{
			{filter: Filter{"id": Filter{"$in": []int{}}}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"FALSE"}, frags)
		assert.Empty(t, params)
	})

	t.Run("nin matches everything", func(t *testing.T) {
		frags, params, err := renderConditions([]condition{
			{filter: Filter{"id": Filter{"$nin": []string{}}}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"TRUE"}, frags)
		assert.Empty(t, params)
	})

	t.Run("numbering unaffected by empty set", func(t *testing.T) {
		frags, params, err := renderConditions([]condition{
			{filter: Filter{"id": Filter{"$in": []int{}}}},
			{filter: Filter{"name": "k"}},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"FALSE", `"name" = $1`}, frags)
		assert.Equal(t, []any{"k"}, params)
	})
}

func TestRenderFilterPlainMap(t *testing.T) {
	// Operator objects may also arrive as plain map[string]any, e.g. when
	// decoded from JSON.
	frags, params, err := renderConditions([]condition{
		{filter: Filter{"age": map[string]any{"$gte": 21}}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`"age" >= $1`}, frags)
	assert.Equal(t, []any{21}, params)
}

func TestRenderFilterUnknownOperator(t *testing.T) {
	_, _, err := renderConditions([]condition{
		{filter: Filter{"age": Filter{"$between": []int{1, 2}}}},
	}, nil)
	require.Error(t, err)
	assert.True(t, pgforge.IsUnsupportedOperation(err))
}

func TestRenderFilterDeterministicColumnOrder(t *testing.T) {
	f := Filter{"b": 2, "a": 1, "c": 3}
	for range 10 {
		frags, params, err := renderConditions([]condition{{filter: f}}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{`"a" = $1`, `"b" = $2`, `"c" = $3`}, frags)
		assert.Equal(t, []any{1, 2, 3}, params)
	}
}

func TestRenderConditionsContinuesNumbering(t *testing.T) {
	// A consecutive $in block must be addressed correctly even when other
	// conditions have already consumed parameter slots.
	frags, params, err := renderConditions([]condition{
		{filter: Filter{"name": "k"}},
		{filter: Filter{"status": Filter{"$in": []string{"a", "b"}}}},
	}, []any{"occupied"})
	require.NoError(t, err)
	assert.Equal(t, []string{`"name" = $2`, `"status" IN ($3, $4)`}, frags)
	assert.Equal(t, []any{"occupied", "k", "a", "b"}, params)
}

func TestRenderRawFragment(t *testing.T) {
	frags, params, err := renderConditions([]condition{{raw: "length(name) > 3"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"length(name) > 3"}, frags)
	assert.Empty(t, params)
}

func TestSliceValuesRejectsScalar(t *testing.T) {
	_, _, err := renderConditions([]condition{
		{filter: Filter{"status": Filter{"$in": "active"}}},
	}, nil)
	require.Error(t, err)
}
