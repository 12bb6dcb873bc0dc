package stash

import (
	"slices"
	"strconv"
	"strings"
)

var listOps = map[string]ListOp{
	"item":    listItem,
	"list":    listList,
	"hash":    listHash,
	"push":    listPush,
	"pop":     listPop,
	"unshift": listUnshift,
	"shift":   listShift,
	"max":     listMax,
	"size":    listSize,
	"defined": listDefined,
	"first":   listFirst,
	"last":    listLast,
	"reverse": listReverse,
	"grep":    listGrep,
	"join":    listJoin,
	"sort":    listSort,
	"nsort":   listNsort,
	"unique":  listUnique,
	"import":  listImport,
	"merge":   listMerge,
	"slice":   listSlice,
	"splice":  listSplice,
}

func listItem(l *List, args ...Value) (Value, error) {
	i := intArg(args, 0, 0)
	if i < 0 {
		i += l.Len()
	}
	return l.At(i), nil
}

func listList(l *List, args ...Value) (Value, error) {
	return l.Copy(), nil
}

// listHash keys each item by its index plus the given offset, or pairs
// consecutive items into keys and values when no offset is given.
func listHash(l *List, args ...Value) (Value, error) {
	m := NewMapping()
	if offset := arg(args, 0); !IsUndefined(offset) {
		n := toLong(offset)
		for i, item := range l.Items {
			m.Set(strconv.FormatInt(n+int64(i), 10), item)
		}
		return m, nil
	}
	for _, pair := range chop(l.Items, 2) {
		m.Set(Text(pair[0]), pair[1])
	}
	return m, nil
}

// chop cuts items into consecutive groups of size n, padding the last
// group with Undefined.
func chop(items []Value, n int) [][]Value {
	var groups [][]Value
	for pos := 0; pos < len(items); pos += n {
		group := make([]Value, n)
		for i := range group {
			if pos+i < len(items) {
				group[i] = orUndefined(items[pos+i])
			} else {
				group[i] = Undefined
			}
		}
		groups = append(groups, group)
	}
	return groups
}

func listPush(l *List, args ...Value) (Value, error) {
	l.Append(args...)
	return Empty, nil
}

func listPop(l *List, args ...Value) (Value, error) {
	if l.Len() == 0 {
		return Undefined, nil
	}
	last := l.Items[l.Len()-1]
	l.Items = l.Items[:l.Len()-1]
	return last, nil
}

func listUnshift(l *List, args ...Value) (Value, error) {
	items := make([]Value, 0, len(args)+l.Len())
	for _, v := range args {
		items = append(items, orUndefined(v))
	}
	l.Items = append(items, l.Items...)
	return Empty, nil
}

func listShift(l *List, args ...Value) (Value, error) {
	if l.Len() == 0 {
		return Undefined, nil
	}
	first := l.Items[0]
	l.Items = slices.Delete(l.Items, 0, 1)
	return first, nil
}

func listMax(l *List, args ...Value) (Value, error) {
	return Int(int64(l.Len() - 1)), nil
}

func listSize(l *List, args ...Value) (Value, error) {
	return Int(int64(l.Len())), nil
}

func listDefined(l *List, args ...Value) (Value, error) {
	if IsUndefined(arg(args, 0)) {
		return Bool(true), nil
	}
	item, err := listItem(l, args...)
	if err != nil {
		return nil, err
	}
	return Bool(!IsUndefined(item)), nil
}

func listFirst(l *List, args ...Value) (Value, error) {
	if IsUndefined(arg(args, 0)) {
		return l.At(0), nil
	}
	n := clampIndex(max(intArg(args, 0, 0), 0), l.Len())
	return NewList(l.Items[:n]...), nil
}

func listLast(l *List, args ...Value) (Value, error) {
	if IsUndefined(arg(args, 0)) {
		return l.At(l.Len() - 1), nil
	}
	n := clampIndex(max(intArg(args, 0, 0), 0), l.Len())
	return NewList(l.Items[l.Len()-n:]...), nil
}

func listReverse(l *List, args ...Value) (Value, error) {
	reversed := l.Copy()
	slices.Reverse(reversed.Items)
	return reversed, nil
}

func listGrep(l *List, args ...Value) (Value, error) {
	re, err := compilePattern("grep", textArg(args, 0, ""))
	if err != nil {
		return nil, err
	}
	matched := NewList()
	for _, item := range l.Items {
		ok, err := re.MatchString(Text(item))
		if err != nil {
			return nil, invalidArgument("grep", err)
		}
		if ok {
			matched.Append(item)
		}
	}
	return matched, nil
}

func listJoin(l *List, args ...Value) (Value, error) {
	parts := make([]string, 0, l.Len())
	for _, item := range l.Items {
		parts = append(parts, Text(item))
	}
	return String(strings.Join(parts, textArg(args, 0, " "))), nil
}

func listSort(l *List, args ...Value) (Value, error) {
	return sortList(l, arg(args, 0), foldText)
}

func listNsort(l *List, args ...Value) (Value, error) {
	return sortList(l, arg(args, 0), toLong)
}

// sortList returns a stably sorted copy of l. When field is given each
// item is keyed by that mapping entry or zero-argument object member
// before coercion.
func sortList[K int64 | string](l *List, field Value, coerce func(Value) K) (Value, error) {
	sorted := l.Copy()
	if sorted.Len() <= 1 {
		return sorted, nil
	}
	keys := make([]K, sorted.Len())
	order := make([]int, sorted.Len())
	for i, item := range sorted.Items {
		key, err := sortKey(item, field)
		if err != nil {
			return nil, err
		}
		keys[i] = coerce(key)
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case keys[a] < keys[b]:
			return -1
		case keys[a] > keys[b]:
			return 1
		}
		return 0
	})
	for i, idx := range order {
		sorted.Items[i] = l.Items[idx]
	}
	return sorted, nil
}

func sortKey(item Value, field Value) (Value, error) {
	if IsUndefined(field) || !Truthy(field) {
		return item, nil
	}
	name := Text(field)
	switch v := item.(type) {
	case *Mapping:
		key, ok := v.Get(name)
		if !ok {
			return Undefined, nil
		}
		return key, nil
	case ObjectValue:
		member, ok := v.Object.Member(name)
		if !ok {
			return item, nil
		}
		if op, ok := member.(*Operation); ok {
			return op.Call()
		}
		return member, nil
	}
	return item, nil
}

// listUnique drops repeated items, keeping the first occurrence.
func listUnique(l *List, args ...Value) (Value, error) {
	seen := map[any]struct{}{}
	unique := NewList()
	for _, item := range l.Items {
		key, ok := identityKey(item)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		unique.Append(item)
	}
	return unique, nil
}

// listImport appends the defined items of every list argument in place.
func listImport(l *List, args ...Value) (Value, error) {
	appendDefined(l, args)
	return l, nil
}

// listMerge is listImport on a copy.
func listMerge(l *List, args ...Value) (Value, error) {
	merged := l.Copy()
	appendDefined(merged, args)
	return merged, nil
}

func appendDefined(l *List, args []Value) {
	for _, a := range args {
		other, ok := a.(*List)
		if !ok {
			continue
		}
		for _, item := range other.Items {
			if !IsUndefined(item) {
				l.Items = append(l.Items, item)
			}
		}
	}
}

func listSlice(l *List, args ...Value) (Value, error) {
	n := l.Len()
	start := clampIndex(intArg(args, 0, 0), n)
	end := n
	if !IsUndefined(arg(args, 1)) {
		end = clampIndex(intArg(args, 1, n), n)
	}
	if end < start {
		return NewList(), nil
	}
	return NewList(l.Items[start:end]...), nil
}

// listSplice removes and returns length items from offset. Inserting
// replacement items is not supported.
func listSplice(l *List, args ...Value) (Value, error) {
	if len(args) > 2 {
		return nil, unsupportedOperation("list splice with replacement")
	}
	n := l.Len()
	start := clampIndex(intArg(args, 0, 0), n)
	end := n
	if length := arg(args, 1); !IsUndefined(length) {
		end = windowEnd(start, int(toLong(length)), n)
	}
	removed := NewList(l.Items[start:end]...)
	l.Items = slices.Delete(l.Items, start, end)
	return removed, nil
}
