package stash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePatches(t *testing.T) {
	shared := NewList(Int(1))
	original := MappingOf(map[string]Value{
		"same":    Int(1),
		"changed": String("old"),
		"removed": Bool(true),
		"list":    shared,
	})
	modified := MappingOf(map[string]Value{
		"same":    Int(1),
		"changed": String("new"),
		"added":   Int(2),
		"list":    shared,
	})

	patches := GeneratePatches(original, modified)
	require.Len(t, patches, 3)

	require.Equal(t, "added", patches[0].Variable())
	require.Equal(t, Int(2), patches[0].Value())
	require.False(t, patches[0].Delete())

	require.Equal(t, "changed", patches[1].Variable())
	require.Equal(t, String("new"), patches[1].Value())

	require.Equal(t, "removed", patches[2].Variable())
	require.True(t, patches[2].Delete())
}

func TestChanges(t *testing.T) {
	root := New(Options{Variables: map[string]any{"a": 1, "b": 2}})
	require.Nil(t, root.Changes())

	clone := root.Clone(MappingOf(map[string]Value{"a": Int(10)}))
	_, err := clone.Set("c", Int(3))
	require.NoError(t, err)
	clone.DeleteVariable("b")

	changes := clone.Changes()
	require.Len(t, changes, 3)
	require.Equal(t, "a", changes[0].Variable())
	require.Equal(t, "c", changes[1].Variable())
	require.Equal(t, "b", changes[2].Variable())
	require.True(t, changes[2].Delete())

	ApplyPatches(root, changes)
	require.Equal(t, []string{"a", "c", "dec", "global", "inc"}, root.ListVariables())
	v, _ := root.GetVariable("a")
	require.Equal(t, Int(10), v)
}

func TestApplyPatches(t *testing.T) {
	s := New(Options{Variables: map[string]any{"gone": 1}})
	ApplyPatches(s, []Patch{
		NewPatch(PatchOptions{Variable: "x", Value: String("y")}),
		NewPatch(PatchOptions{Variable: "gone", Delete: true}),
		NewPatch(PatchOptions{Variable: "nil"}),
	})

	v, ok := s.GetVariable("x")
	require.True(t, ok)
	require.Equal(t, String("y"), v)

	_, ok = s.GetVariable("gone")
	require.False(t, ok)

	v, ok = s.GetVariable("nil")
	require.True(t, ok)
	require.True(t, IsUndefined(v))
}
