package stash_test

import (
	"fmt"
	"testing"

	"github.com/deepnoodle-ai/stash"
	"github.com/stretchr/testify/require"
)

func TestTemplateBlockExample(t *testing.T) {
	st := stash.New(stash.Options{
		Variables: map[string]any{
			"site": map[string]any{"title": "Docs"},
			"pages": []any{
				map[string]any{"name": "intro", "order": 2},
				map[string]any{"name": "Basics", "order": 10},
				map[string]any{"name": "api", "order": 1},
			},
		},
	})

	// A block scope: locals are visible inside and gone after declone.
	block := st.Clone(stash.MappingOf(map[string]stash.Value{
		"heading": stash.String("Contents"),
	}))

	ordered, err := block.GetPath(stash.Path{stash.Seg("pages"), stash.Seg("nsort", stash.String("order"))})
	require.NoError(t, err)

	var names []string
	for _, page := range ordered.(*stash.List).Items {
		name, _ := page.(*stash.Mapping).Get("name")
		names = append(names, stash.Text(name))
	}
	require.Equal(t, []string{"api", "intro", "Basics"}, names)

	heading, err := block.Get("heading")
	require.NoError(t, err)
	require.Equal(t, "Contents", stash.Text(heading))

	st = block.Declone()
	heading, err = st.Get("heading")
	require.NoError(t, err)
	require.Equal(t, "", stash.Text(heading))

	title, err := st.Get("site.title.length")
	require.NoError(t, err)
	require.Equal(t, "4", stash.Text(title))
}

func ExampleStash_Get() {
	st := stash.New(stash.Options{Variables: map[string]any{
		"user": map[string]any{"name": "Alice", "tags": []any{"b", "a", "C"}},
	}})

	name, _ := st.Get("user.name")
	tags, _ := st.Get("user.tags.sort")
	size, _ := st.Get("user.tags.size")
	fmt.Println(stash.Text(name), stash.Text(tags), stash.Text(size))
	// Output: Alice [a, b, C] 3
}

func ExampleStash_Set() {
	st := stash.New(stash.Options{})
	st.Set("a.b.c", stash.Int(5))

	v, _ := st.Get("a.b")
	fmt.Println(stash.Text(v))
	// Output: {c: 5}
}

func ExampleStash_Clone() {
	root := stash.New(stash.Options{Variables: map[string]any{"x": 1}})
	inner := root.Clone(stash.MappingOf(map[string]stash.Value{"x": stash.Int(2)}))

	a, _ := inner.Get("x")
	b, _ := inner.Declone().Get("x")
	fmt.Println(stash.Text(a), stash.Text(b))
	// Output: 2 1
}
