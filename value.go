package stash

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindUndefined Kind = iota
	KindScalar
	KindList
	KindMapping
	KindObject
	KindOperation
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMapping:
		return "mapping"
	case KindObject:
		return "object"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Value is a dynamically typed value flowing through the stash. The set of
// implementations is closed: Undefined, Scalar, *List, *Mapping,
// ObjectValue and *Operation.
type Value interface {
	Kind() Kind
	isValue()
}

type undefinedValue struct{}

func (undefinedValue) Kind() Kind { return KindUndefined }
func (undefinedValue) isValue()   {}

// Undefined is the value of anything that could not be found.
var Undefined Value = undefinedValue{}

// IsUndefined reports whether v is Undefined. A nil Value counts as
// Undefined.
func IsUndefined(v Value) bool {
	return v == nil || v.Kind() == KindUndefined
}

func orUndefined(v Value) Value {
	if v == nil {
		return Undefined
	}
	return v
}

// Scalar is a leaf value holding a string, int64, float64 or bool.
type Scalar struct {
	v any
}

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) isValue()   {}

// String returns a text scalar.
func String(s string) Scalar { return Scalar{v: s} }

// Int returns an integer scalar.
func Int(i int64) Scalar { return Scalar{v: i} }

// Float returns a floating point scalar.
func Float(f float64) Scalar { return Scalar{v: f} }

// Bool returns a boolean scalar.
func Bool(b bool) Scalar { return Scalar{v: b} }

// Empty is the empty text scalar returned by operations that produce no
// meaningful result.
var Empty = String("")

// Interface returns the underlying Go value.
func (s Scalar) Interface() any {
	if s.v == nil {
		return ""
	}
	return s.v
}

// Text returns the text form of the scalar. Booleans render as "1" and "".
func (s Scalar) Text() string {
	switch v := s.v.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		return ""
	}
}

// Integer returns the scalar as an integer when it converts exactly: an
// integer, an integral float, or text holding a decimal integer.
func (s Scalar) Integer() (int64, bool) {
	switch v := s.v.(type) {
	case int64:
		return v, true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return int64(v), true
		}
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i, true
		}
	}
	return 0, false
}

// Number returns the scalar as a float when it is numeric or holds
// numeric text.
func (s Scalar) Number() (float64, bool) {
	switch v := s.v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// IsText reports whether the scalar holds a string.
func (s Scalar) IsText() bool {
	_, ok := s.v.(string)
	return ok || s.v == nil
}

func formatFloat(f float64) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// List is an ordered, mutable sequence of values.
type List struct {
	Items []Value
}

func (*List) Kind() Kind { return KindList }
func (*List) isValue()   {}

// NewList returns a list holding items.
func NewList(items ...Value) *List {
	l := &List{Items: make([]Value, 0, len(items))}
	for _, item := range items {
		l.Items = append(l.Items, orUndefined(item))
	}
	return l
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.Items)
}

// At returns the item at index i or Undefined when i is out of range.
func (l *List) At(i int) Value {
	if i < 0 || i >= len(l.Items) {
		return Undefined
	}
	return orUndefined(l.Items[i])
}

// Store sets index i, padding the list with Undefined when i is past the
// end.
func (l *List) Store(i int, v Value) {
	for len(l.Items) <= i {
		l.Items = append(l.Items, Undefined)
	}
	l.Items[i] = orUndefined(v)
}

// Append adds values to the end of the list.
func (l *List) Append(values ...Value) {
	for _, v := range values {
		l.Items = append(l.Items, orUndefined(v))
	}
}

// Copy returns a shallow copy of the list.
func (l *List) Copy() *List {
	items := make([]Value, len(l.Items))
	copy(items, l.Items)
	return &List{Items: items}
}

// Mapping is a mutable set of text keys bound to values.
type Mapping struct {
	entries map[string]Value
}

func (*Mapping) Kind() Kind { return KindMapping }
func (*Mapping) isValue()   {}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: map[string]Value{}}
}

// MappingOf returns a mapping holding the given entries.
func MappingOf(entries map[string]Value) *Mapping {
	m := &Mapping{entries: make(map[string]Value, len(entries))}
	for k, v := range entries {
		m.entries[k] = orUndefined(v)
	}
	return m
}

// Get returns the value stored at key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Set stores v at key.
func (m *Mapping) Set(key string, v Value) {
	if m.entries == nil {
		m.entries = map[string]Value{}
	}
	m.entries[key] = orUndefined(v)
}

// Delete removes key. Deleting an absent key is a no-op.
func (m *Mapping) Delete(key string) {
	delete(m.entries, key)
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Keys returns the keys in sorted order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Copy returns a shallow copy of the mapping.
func (m *Mapping) Copy() *Mapping {
	return MappingOf(m.entries)
}

// Merge copies every entry of other into m, replacing existing keys.
func (m *Mapping) Merge(other *Mapping) {
	if other == nil {
		return
	}
	for k, v := range other.entries {
		m.Set(k, v)
	}
}

// Object is implemented by host values embedded in the environment.
// Member returns a named member; members that are *Operation values are
// invoked with the path arguments. Fields exposes the object's internal
// state for the hash operations used when no member matches.
type Object interface {
	Member(name string) (Value, bool)
	Fields() *Mapping
}

// ObjectValue wraps an Object as a Value.
type ObjectValue struct {
	Object Object
}

func (ObjectValue) Kind() Kind { return KindObject }
func (ObjectValue) isValue()   {}

// NewObject wraps o as a Value.
func NewObject(o Object) ObjectValue {
	return ObjectValue{Object: o}
}

// Func is the Go signature behind an Operation.
type Func func(args ...Value) (Value, error)

// Operation is a callable value. Bound arguments are passed ahead of the
// arguments given to Call.
type Operation struct {
	Name  string
	Bound []Value
	fn    Func
}

func (*Operation) Kind() Kind { return KindOperation }
func (*Operation) isValue()   {}

// NewOperation returns an operation calling fn with bound ahead of the
// call-time arguments.
func NewOperation(name string, fn Func, bound ...Value) *Operation {
	return &Operation{Name: name, Bound: bound, fn: fn}
}

// Call invokes the operation.
func (o *Operation) Call(args ...Value) (Value, error) {
	if o.fn == nil {
		return Undefined, nil
	}
	all := make([]Value, 0, len(o.Bound)+len(args))
	all = append(all, o.Bound...)
	all = append(all, args...)
	v, err := o.fn(all...)
	if err != nil {
		return nil, err
	}
	return orUndefined(v), nil
}
