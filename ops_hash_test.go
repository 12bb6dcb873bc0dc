package stash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleMapping() *Mapping {
	return MappingOf(map[string]Value{
		"b":       Int(2),
		"a":       Int(1),
		"C":       Int(3),
		"_secret": String("hidden"),
	})
}

func TestHashOps(t *testing.T) {
	tests := []struct {
		name string
		op   string
		args []Value
		want any
	}{
		{name: "item", op: "item", args: []Value{String("a")}, want: int64(1)},
		{name: "item missing", op: "item", args: []Value{String("z")}, want: nil},
		{name: "item private", op: "item", args: []Value{String("_secret")}, want: nil},
		{name: "size counts public keys", op: "size", want: int64(3)},
		{
			name: "each flattens in key order",
			op:   "each",
			want: []any{"C", int64(3), "a", int64(1), "b", int64(2)},
		},
		{name: "keys", op: "keys", want: []any{"C", "a", "b"}},
		{name: "values", op: "values", want: []any{int64(3), int64(1), int64(2)}},
		{
			name: "pairs fold case",
			op:   "pairs",
			want: []any{
				map[string]any{"key": "a", "value": int64(1)},
				map[string]any{"key": "b", "value": int64(2)},
				map[string]any{"key": "C", "value": int64(3)},
			},
		},
		{name: "list keys", op: "list", args: []Value{String("keys")}, want: []any{"C", "a", "b"}},
		{name: "list each", op: "list", args: []Value{String("each")}, want: []any{"C", int64(3), "a", int64(1), "b", int64(2)}},
		{name: "exists", op: "exists", args: []Value{String("a")}, want: true},
		{name: "not exists", op: "exists", args: []Value{String("z")}, want: false},
		{name: "private key does not exist", op: "exists", args: []Value{String("_secret")}, want: false},
		{name: "defined without key", op: "defined", want: true},
		{name: "defined key", op: "defined", args: []Value{String("b")}, want: true},
		{name: "undefined key", op: "defined", args: []Value{String("z")}, want: false},
		{name: "private key is not defined", op: "defined", args: []Value{String("_secret")}, want: false},
		{name: "sort folds case", op: "sort", want: []any{"a", "b", "C"}},
		{name: "nsort", op: "nsort", want: []any{"C", "a", "b"}},
	}

	catalog := NewCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := catalog.HashOp(tt.op)
			require.True(t, ok)
			got, err := op(sampleMapping(), tt.args...)
			require.NoError(t, err)
			require.Equal(t, tt.want, ToGo(got))
		})
	}
}

func TestHashNsort(t *testing.T) {
	m := MappingOf(map[string]Value{"10": Int(0), "9": Int(0), "x": Int(0)})
	got, err := hashNsort(m)
	require.NoError(t, err)
	require.Equal(t, []any{"x", "9", "10"}, ToGo(got))
}

func TestHashDelete(t *testing.T) {
	m := sampleMapping()
	got, err := hashDelete(m, String("a"), String("missing"))
	require.NoError(t, err)
	require.Equal(t, Empty, got)
	require.False(t, m.Has("a"))
	require.Equal(t, 3, m.Len())

	_, err = hashDelete(m, String("_secret"))
	require.NoError(t, err)
	require.True(t, m.Has("_secret"))
}

func TestHashImport(t *testing.T) {
	m := MappingOf(map[string]Value{"a": Int(1)})

	got, err := hashImport(m, MappingOf(map[string]Value{"a": Int(9), "b": Int(2)}))
	require.NoError(t, err)
	require.Equal(t, Empty, got)
	require.Equal(t, map[string]any{"a": int64(9), "b": int64(2)}, ToGo(m))

	_, err = hashImport(m, String("not a mapping"))
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
}
