package stash

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/cases"
)

var (
	leadingIntPattern = regexp2.MustCompile(`^\s*[-+]?\d+`, regexp2.None)
	foldCaser         = cases.Fold()
)

// FromGo converts a plain Go value into a Value. Values pass through
// unchanged, Object implementations are wrapped and Func values become
// operations. Anything else falls back to its text form.
func FromGo(value any) Value {
	switch v := value.(type) {
	case nil:
		return Undefined
	case Value:
		return v
	case Object:
		return NewObject(v)
	case Func:
		return NewOperation("func", v)
	case func(args ...Value) (Value, error):
		return NewOperation("func", v)
	case string:
		return String(v)
	case bool:
		return Bool(v)
	case int:
		return Int(int64(v))
	case int8:
		return Int(int64(v))
	case int16:
		return Int(int64(v))
	case int32:
		return Int(int64(v))
	case int64:
		return Int(v)
	case uint:
		return Int(int64(v))
	case uint8:
		return Int(int64(v))
	case uint16:
		return Int(int64(v))
	case uint32:
		return Int(int64(v))
	case uint64:
		return Int(int64(v))
	case float32:
		return Float(float64(v))
	case float64:
		return Float(v)
	case time.Time:
		return String(v.Format(time.RFC3339))
	case []Value:
		return NewList(v...)
	case []any:
		l := &List{Items: make([]Value, 0, len(v))}
		for _, item := range v {
			l.Items = append(l.Items, FromGo(item))
		}
		return l
	case []string:
		l := &List{Items: make([]Value, 0, len(v))}
		for _, s := range v {
			l.Items = append(l.Items, String(s))
		}
		return l
	case map[string]Value:
		return MappingOf(v)
	case map[string]any:
		m := NewMapping()
		for key, item := range v {
			m.Set(key, FromGo(item))
		}
		return m
	case map[any]any:
		m := NewMapping()
		for key, item := range v {
			m.Set(fmt.Sprint(key), FromGo(item))
		}
		return m
	}
	return fromReflect(reflect.ValueOf(value))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Undefined
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		l := &List{Items: make([]Value, 0, rv.Len())}
		for i := 0; i < rv.Len(); i++ {
			l.Items = append(l.Items, FromGo(rv.Index(i).Interface()))
		}
		return l
	case reflect.Map:
		m := NewMapping()
		iter := rv.MapRange()
		for iter.Next() {
			m.Set(fmt.Sprint(iter.Key().Interface()), FromGo(iter.Value().Interface()))
		}
		return m
	case reflect.String:
		return String(rv.String())
	}
	return String(fmt.Sprint(rv.Interface()))
}

// ToGo converts a Value into plain Go data: nil, string, int64, float64,
// bool, []any and map[string]any. Objects convert through their fields
// and operations convert to nil.
func ToGo(value Value) any {
	switch v := orUndefined(value).(type) {
	case Scalar:
		return v.Interface()
	case *List:
		result := make([]any, 0, len(v.Items))
		for _, item := range v.Items {
			result = append(result, ToGo(item))
		}
		return result
	case *Mapping:
		result := make(map[string]any, v.Len())
		for key, item := range v.entries {
			result[key] = ToGo(item)
		}
		return result
	case ObjectValue:
		if fields := v.Object.Fields(); fields != nil {
			return ToGo(fields)
		}
		return map[string]any{}
	default:
		return nil
	}
}

// Truthy reports whether a value counts as true: Undefined, empty text,
// "0", zero numbers, false and empty containers are false.
func Truthy(value Value) bool {
	switch v := orUndefined(value).(type) {
	case Scalar:
		switch s := v.v.(type) {
		case bool:
			return s
		case int64:
			return s != 0
		case float64:
			return s != 0.0
		case string:
			return s != "" && s != "0"
		default:
			return false
		}
	case *List:
		return len(v.Items) > 0
	case *Mapping:
		return v.Len() > 0
	case ObjectValue, *Operation:
		return true
	default:
		return false
	}
}

// Text returns the text form of any value. Containers render their items
// so that sorting and pattern matching over them stay deterministic.
func Text(value Value) string {
	switch v := orUndefined(value).(type) {
	case Scalar:
		return v.Text()
	case *List:
		parts := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			parts = append(parts, Text(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Mapping:
		parts := make([]string, 0, v.Len())
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			parts = append(parts, key+": "+Text(item))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case ObjectValue:
		if s, ok := v.Object.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprintf("%T", v.Object)
	case *Operation:
		return v.Name
	default:
		return ""
	}
}

// toLong is the numeric coercion used by nsort: exact integers convert
// directly, floats truncate, otherwise the leading signed integer of the
// text form is used, or 0 when there is none.
func toLong(value Value) int64 {
	if s, ok := value.(Scalar); ok {
		switch n := s.v.(type) {
		case int64:
			return n
		case float64:
			return int64(n)
		case bool:
			if n {
				return 1
			}
			return 0
		}
	}
	text := Text(value)
	if i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64); err == nil {
		return i
	}
	m, err := leadingIntPattern.FindStringMatch(text)
	if err != nil || m == nil {
		return 0
	}
	i, err := strconv.ParseInt(strings.TrimSpace(m.String()), 10, 64)
	if err != nil {
		return 0
	}
	return i
}

// foldText is the text coercion used by sort: the text form, case-folded.
func foldText(value Value) string {
	return foldCaser.String(Text(value))
}

// keyText returns the canonical mapping key for a name. Only scalars name
// keys.
func keyText(name Value) (string, bool) {
	s, ok := name.(Scalar)
	if !ok {
		return "", false
	}
	return s.Text(), true
}

// indexOf returns the list position named by an integer-shaped scalar.
func indexOf(name Value) (int, bool) {
	s, ok := name.(Scalar)
	if !ok {
		return 0, false
	}
	if _, isBool := s.v.(bool); isBool {
		return 0, false
	}
	i, ok := s.Integer()
	if !ok {
		return 0, false
	}
	return int(i), true
}

// isPrivate reports whether name matches the private-name pattern: text
// starting with '_' or '.'.
func isPrivate(name Value) bool {
	s, ok := name.(Scalar)
	if !ok || !s.IsText() {
		return false
	}
	text := s.Text()
	return strings.HasPrefix(text, "_") || strings.HasPrefix(text, ".")
}

// sameValue reports whether a and b are the same binding: equal scalars or
// the same container.
func sameValue(a, b Value) bool {
	a, b = orUndefined(a), orUndefined(b)
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Scalar:
		return av.v == b.(Scalar).v
	case ObjectValue:
		bv := b.(ObjectValue)
		if av.Object == nil || bv.Object == nil {
			return av.Object == bv.Object
		}
		if !reflect.TypeOf(av.Object).Comparable() || reflect.TypeOf(av.Object) != reflect.TypeOf(bv.Object) {
			return false
		}
		return av.Object == bv.Object
	default:
		return a == b
	}
}

// identityKey returns a comparable key identifying a value for unique.
// Objects of non-comparable types have no identity key.
func identityKey(value Value) (any, bool) {
	switch v := orUndefined(value).(type) {
	case ObjectValue:
		if v.Object == nil || !reflect.TypeOf(v.Object).Comparable() {
			return nil, false
		}
		return v.Object, true
	default:
		return v, true
	}
}

// sortedKeysBy returns the mapping's public keys ordered by the coerced
// key, ties broken by the raw key.
func sortedKeysBy[K int64 | string](m *Mapping, coerce func(Value) K) []string {
	keys := publicKeys(m)
	sort.SliceStable(keys, func(i, j int) bool {
		return coerce(String(keys[i])) < coerce(String(keys[j]))
	})
	return keys
}
