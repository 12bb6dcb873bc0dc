package stash

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mathParams struct {
	A int `yaml:"a"`
	B int `yaml:"b"`
}

type mathResult struct {
	Sum int `yaml:"sum"`
}

func TestTypedFunction(t *testing.T) {
	add := TypedFunction("math.add", func(p mathParams) (mathResult, error) {
		return mathResult{Sum: p.A + p.B}, nil
	})
	s := New(Options{Variables: map[string]any{"add": add}})

	result, err := s.Get("add", MappingOf(map[string]Value{"a": Int(5), "b": Int(3)}))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"sum": int64(8)}, ToGo(result))

	sum, err := s.GetPath(Path{Seg("add", MappingOf(map[string]Value{"a": Int(2), "b": Int(2)})), Seg("sum")})
	require.NoError(t, err)
	assert.Equal(t, int64(4), ToGo(sum))

	_, err = add.Call(String("not: [a mapping"))
	require.Error(t, err)
}

func TestTypedFunctionScalars(t *testing.T) {
	double := TypedFunction("double", func(n int) (int, error) {
		if n < 0 {
			return 0, errors.New("negative")
		}
		return n * 2, nil
	})

	got, err := double.Call(Int(21))
	require.NoError(t, err)
	assert.Equal(t, Int(42), got)

	got, err = double.Call()
	require.NoError(t, err)
	assert.Equal(t, Int(0), got)

	_, err = double.Call(Int(-1))
	require.EqualError(t, err, "negative")
}

func TestNewFunction(t *testing.T) {
	greet := NewFunction("greet", func(args ...Value) (Value, error) {
		return String("hello " + Text(arg(args, 0))), nil
	})
	s := New(Options{Variables: map[string]any{"greet": greet}})
	got, err := s.Get("greet", String("world"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", ToGo(got))
}
