package script

import (
	"context"
	"testing"

	"github.com/deepnoodle-ai/stash"
	"github.com/stretchr/testify/require"
)

func newStash(vars map[string]any) *stash.Stash {
	return stash.New(stash.Options{Variables: vars})
}

func TestEngineEval(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		vars        map[string]any
		want        any
		wantErr     bool
		errContains string
	}{
		{
			name: "arithmetic on a stash variable",
			code: "x + 1",
			vars: map[string]any{"x": 41},
			want: int64(42),
		},
		{
			name: "nested mapping access",
			code: `user["name"]`,
			vars: map[string]any{"user": map[string]any{"name": "Alice"}},
			want: "Alice",
		},
		{
			name: "builtin over a stash list",
			code: "len(items)",
			vars: map[string]any{"items": []any{1, 2, 3}},
			want: int64(3),
		},
		{
			name: "root operation is callable",
			code: "inc(x)",
			vars: map[string]any{"x": 9},
			want: int64(10),
		},
		{
			name: "map literal becomes a mapping",
			code: "m := {\"a\": 1, \"b\": \"two\"}\nm",
			want: map[string]any{"a": int64(1), "b": "two"},
		},
		{
			name:    "unknown name fails to compile",
			code:    "missing + 1",
			wantErr: true,
		},
		{
			name:    "syntax error",
			code:    "1 +",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := NewEngine(SafeBuiltins())
			result, err := engine.Eval(context.Background(), tt.code, newStash(tt.vars))
			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					require.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, stash.ToGo(result))
		})
	}
}

func TestProgramSeesCurrentBindings(t *testing.T) {
	ctx := context.Background()
	st := newStash(map[string]any{"x": 1})
	engine := NewEngine(nil)

	program, err := engine.Compile(ctx, "x * 10", Names(st))
	require.NoError(t, err)

	result, err := program.Evaluate(ctx, st)
	require.NoError(t, err)
	require.Equal(t, int64(10), stash.ToGo(result))

	_, err = st.Set("x", stash.Int(5))
	require.NoError(t, err)
	result, err = program.Evaluate(ctx, st)
	require.NoError(t, err)
	require.Equal(t, int64(50), stash.ToGo(result))
}

func TestNamesSkipsPrivateAndInvalid(t *testing.T) {
	st := newStash(map[string]any{
		"visible":  1,
		"_private": 2,
		"has-dash": 3,
	})
	names := Names(st)
	require.Contains(t, names, "visible")
	require.Contains(t, names, "global")
	require.NotContains(t, names, "_private")
	require.NotContains(t, names, "has-dash")
}

func TestSafeBuiltins(t *testing.T) {
	builtins := SafeBuiltins()
	require.Contains(t, builtins, "len")
	require.Contains(t, builtins, "sprintf")
	require.NotContains(t, builtins, "os")
	require.NotContains(t, builtins, "exec")
}
