package stash

import "sort"

// ScalarOp is a virtual method over a scalar.
type ScalarOp func(s Scalar, args ...Value) (Value, error)

// ListOp is a virtual method over a list.
type ListOp func(l *List, args ...Value) (Value, error)

// HashOp is a virtual method over a mapping.
type HashOp func(m *Mapping, args ...Value) (Value, error)

// Catalog holds the virtual methods available to a stash. A catalog is
// shared by a stash and all of its clones.
type Catalog struct {
	scalar map[string]ScalarOp
	list   map[string]ListOp
	hash   map[string]HashOp
}

// NewCatalog returns a catalog holding the built-in virtual methods.
func NewCatalog() *Catalog {
	c := &Catalog{
		scalar: make(map[string]ScalarOp, len(scalarOps)),
		list:   make(map[string]ListOp, len(listOps)),
		hash:   make(map[string]HashOp, len(hashOps)),
	}
	for name, op := range scalarOps {
		c.scalar[name] = op
	}
	for name, op := range listOps {
		c.list[name] = op
	}
	for name, op := range hashOps {
		c.hash[name] = op
	}
	return c
}

// DefineScalarOp adds or replaces a scalar virtual method.
func (c *Catalog) DefineScalarOp(name string, op ScalarOp) {
	c.scalar[name] = op
}

// DefineListOp adds or replaces a list virtual method.
func (c *Catalog) DefineListOp(name string, op ListOp) {
	c.list[name] = op
}

// DefineHashOp adds or replaces a hash virtual method.
func (c *Catalog) DefineHashOp(name string, op HashOp) {
	c.hash[name] = op
}

// ScalarOp looks up a scalar virtual method.
func (c *Catalog) ScalarOp(name string) (ScalarOp, bool) {
	op, ok := c.scalar[name]
	return op, ok
}

// ListOp looks up a list virtual method.
func (c *Catalog) ListOp(name string) (ListOp, bool) {
	op, ok := c.list[name]
	return op, ok
}

// HashOp looks up a hash virtual method.
func (c *Catalog) HashOp(name string) (HashOp, bool) {
	op, ok := c.hash[name]
	return op, ok
}

// Names returns the sorted names of the methods defined for a kind.
func (c *Catalog) Names(kind Kind) []string {
	var names []string
	switch kind {
	case KindScalar:
		for name := range c.scalar {
			names = append(names, name)
		}
	case KindList:
		for name := range c.list {
			names = append(names, name)
		}
	case KindMapping:
		for name := range c.hash {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// arg returns the i'th argument or Undefined.
func arg(args []Value, i int) Value {
	if i < len(args) {
		return orUndefined(args[i])
	}
	return Undefined
}

// intArg returns the i'th argument coerced to an integer, or def when the
// argument is absent.
func intArg(args []Value, i int, def int) int {
	v := arg(args, i)
	if IsUndefined(v) {
		return def
	}
	return int(toLong(v))
}

// textArg returns the i'th argument as text, or def when it is absent.
func textArg(args []Value, i int, def string) string {
	v := arg(args, i)
	if IsUndefined(v) {
		return def
	}
	return Text(v)
}

// windowEnd returns the end of a count-item window starting at start in a
// sequence of n items. A negative count leaves that many items at the end.
func windowEnd(start, count, n int) int {
	if count < 0 {
		return max(n+count, start)
	}
	if count > n-start {
		return n
	}
	return start + count
}

// clampIndex converts a possibly negative offset into a position in
// [0, n], counting negative offsets from the end.
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
		if i < 0 {
			return 0
		}
	}
	if i > n {
		return n
	}
	return i
}
