package stash

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromGo(t *testing.T) {
	type point struct{ X, Y int }
	when := time.Date(2025, 7, 21, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  any
	}{
		{name: "nil", input: nil, want: nil},
		{name: "string", input: "s", want: "s"},
		{name: "int", input: 3, want: int64(3)},
		{name: "uint8", input: uint8(7), want: int64(7)},
		{name: "float32", input: float32(0.5), want: 0.5},
		{name: "bool", input: true, want: true},
		{name: "time", input: when, want: "2025-07-21T12:00:00Z"},
		{name: "strings", input: []string{"a", "b"}, want: []any{"a", "b"}},
		{name: "ints by reflection", input: []int{1, 2}, want: []any{int64(1), int64(2)}},
		{name: "nested", input: map[string]any{"l": []any{1, "x"}}, want: map[string]any{"l": []any{int64(1), "x"}}},
		{name: "int keys", input: map[int]string{1: "one"}, want: map[string]any{"1": "one"}},
		{name: "nil pointer", input: (*point)(nil), want: nil},
		{name: "struct falls back to text", input: point{1, 2}, want: "{1 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ToGo(FromGo(tt.input)))
		})
	}
}

func TestFromGoFunc(t *testing.T) {
	v := FromGo(func(args ...Value) (Value, error) {
		return Int(int64(len(args))), nil
	})
	op, ok := v.(*Operation)
	require.True(t, ok)
	got, err := op.Call(Int(1), Int(2))
	require.NoError(t, err)
	require.Equal(t, Int(2), got)
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{name: "undefined", value: Undefined, want: false},
		{name: "nil", value: nil, want: false},
		{name: "empty text", value: Empty, want: false},
		{name: "zero text", value: String("0"), want: false},
		{name: "text", value: String("0.0"), want: true},
		{name: "zero", value: Int(0), want: false},
		{name: "number", value: Float(0.1), want: true},
		{name: "false", value: Bool(false), want: false},
		{name: "empty list", value: NewList(), want: false},
		{name: "list", value: NewList(Undefined), want: true},
		{name: "empty mapping", value: NewMapping(), want: false},
		{name: "operation", value: NewOperation("op", nil), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Truthy(tt.value))
		})
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "undefined", value: Undefined, want: ""},
		{name: "true", value: Bool(true), want: "1"},
		{name: "false", value: Bool(false), want: ""},
		{name: "float", value: Float(2.5), want: "2.5"},
		{name: "integral float", value: Float(3), want: "3"},
		{name: "large float", value: Float(1e22), want: "1e+22"},
		{name: "list", value: NewList(Int(1), String("a")), want: "[1, a]"},
		{name: "mapping", value: MappingOf(map[string]Value{"b": Int(2), "a": Int(1)}), want: "{a: 1, b: 2}"},
		{name: "operation", value: NewOperation("inc", nil), want: "inc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Text(tt.value))
		})
	}
}

func TestToLong(t *testing.T) {
	tests := []struct {
		value Value
		want  int64
	}{
		{value: Int(4), want: 4},
		{value: Float(2.9), want: 2},
		{value: String(" 12 "), want: 12},
		{value: String("10x"), want: 10},
		{value: String("-3 apples"), want: -3},
		{value: String("x10"), want: 0},
		{value: Undefined, want: 0},
		{value: Bool(true), want: 1},
	}
	for _, tt := range tests {
		t.Run(Text(tt.value), func(t *testing.T) {
			require.Equal(t, tt.want, toLong(tt.value))
		})
	}
}

func TestIsPrivate(t *testing.T) {
	require.True(t, isPrivate(String("_x")))
	require.True(t, isPrivate(String(".x")))
	require.False(t, isPrivate(String("x_")))
	require.False(t, isPrivate(Int(1)))
	require.False(t, isPrivate(NewList(String("_x"))))
}
