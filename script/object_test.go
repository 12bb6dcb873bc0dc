package script

import (
	"context"
	"errors"
	"testing"

	"github.com/deepnoodle-ai/stash"
	"github.com/risor-io/risor/object"
	"github.com/stretchr/testify/require"
)

// counter is a Risor object with one attribute and one method.
type counter struct {
	*object.Map
	n int64
}

func (c *counter) GetAttr(name string) (object.Object, bool) {
	switch name {
	case "count":
		return object.NewInt(c.n), true
	case "add":
		return object.NewBuiltin("add", func(ctx context.Context, args ...object.Object) object.Object {
			for _, a := range args {
				i, ok := a.(*object.Int)
				if !ok {
					return object.NewError(errors.New("add expects integers"))
				}
				c.n += i.Value()
			}
			return object.NewInt(c.n)
		}), true
	}
	return nil, false
}

func TestObjectThroughStash(t *testing.T) {
	ctx := context.Background()
	c := &counter{Map: object.NewMap(map[string]object.Object{})}
	st := stash.New(stash.Options{Variables: map[string]any{
		"counter": NewObject(ctx, c),
	}})

	v, err := st.Get("counter.count")
	require.NoError(t, err)
	require.Equal(t, int64(0), stash.ToGo(v))

	v, err = st.GetPath(stash.Path{stash.Seg("counter"), stash.Seg("add", stash.Int(2), stash.Int(3))})
	require.NoError(t, err)
	require.Equal(t, int64(5), stash.ToGo(v))
	require.Equal(t, int64(5), c.n)

	_, err = st.GetPath(stash.Path{stash.Seg("counter"), stash.Seg("add", stash.String("x"))})
	require.Error(t, err)
	require.Contains(t, err.Error(), "add expects integers")

	v, err = st.Get("counter.missing")
	require.NoError(t, err)
	require.Equal(t, "", stash.Text(v))
}

func TestToValue(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		obj  object.Object
		want any
	}{
		{name: "nil", obj: object.Nil, want: nil},
		{name: "string", obj: object.NewString("hi"), want: "hi"},
		{name: "int", obj: object.NewInt(3), want: int64(3)},
		{name: "float", obj: object.NewFloat(1.5), want: 1.5},
		{name: "bool", obj: object.True, want: true},
		{
			name: "list",
			obj:  object.NewList([]object.Object{object.NewInt(1), object.NewString("a")}),
			want: []any{int64(1), "a"},
		},
		{
			name: "map",
			obj:  object.NewMap(map[string]object.Object{"k": object.NewInt(1)}),
			want: map[string]any{"k": int64(1)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, stash.ToGo(ToValue(ctx, tt.obj)))
		})
	}
}

func TestFromValueRoundTrip(t *testing.T) {
	ctx := context.Background()
	value := stash.FromGo(map[string]any{
		"name":  "Bob",
		"tags":  []any{"a", "b"},
		"count": 2,
		"ratio": 0.5,
		"ok":    true,
	})
	back := ToValue(ctx, FromValue(value))
	require.Equal(t, stash.ToGo(value), stash.ToGo(back))
}

func TestOperationBecomesBuiltin(t *testing.T) {
	ctx := context.Background()
	double := stash.NewOperation("double", func(args ...stash.Value) (stash.Value, error) {
		n, _ := args[0].(stash.Scalar).Integer()
		return stash.Int(n * 2), nil
	})
	builtin, ok := FromValue(double).(*object.Builtin)
	require.True(t, ok)
	result := builtin.Call(ctx, object.NewInt(21))
	require.Equal(t, object.NewInt(42), result)

	failing := stash.NewOperation("fail", func(args ...stash.Value) (stash.Value, error) {
		return nil, errors.New("boom")
	})
	result = FromValue(failing).(*object.Builtin).Call(ctx)
	errObj, ok := result.(*object.Error)
	require.True(t, ok)
	require.EqualError(t, errObj.Value(), "boom")
}
