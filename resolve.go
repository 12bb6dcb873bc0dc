package stash

// Get resolves a dotted identifier. A plain name is resolved as a single
// segment with args; a dotted identifier is split into segments without
// arguments. When nothing is found the undefined hook decides the result.
func (s *Stash) Get(ident string, args ...Value) (Value, error) {
	return s.get(identPath(ident, args), ident, args)
}

// GetPath resolves a pre-split path.
func (s *Stash) GetPath(path Path) (Value, error) {
	return s.get(path, path.String(), nil)
}

func (s *Stash) get(path Path, ident string, args []Value) (Value, error) {
	var root Value = s.contents
	result := Undefined
	for _, seg := range path {
		v, err := s.dotop(root, seg.Name, seg.Args, false)
		if err != nil {
			return nil, err
		}
		result = v
		if IsUndefined(v) {
			break
		}
		root = v
	}
	if IsUndefined(result) {
		return orUndefined(s.undefined(ident, args)), nil
	}
	return result, nil
}

// Set assigns value at a dotted identifier, creating intermediate
// mappings as needed. It returns the assigned value, or empty text when
// the assignment did nothing.
func (s *Stash) Set(ident string, value Value) (Value, error) {
	return s.set(identPath(ident, nil), value, false)
}

// SetDefault is Set that leaves an existing truthy value in place.
func (s *Stash) SetDefault(ident string, value Value) (Value, error) {
	return s.set(identPath(ident, nil), value, true)
}

// SetPath assigns value at a pre-split path. With dflt set an existing
// truthy value is left in place.
func (s *Stash) SetPath(path Path, value Value, dflt bool) (Value, error) {
	return s.set(path, value, dflt)
}

func (s *Stash) set(path Path, value Value, dflt bool) (Value, error) {
	if len(path) == 0 {
		return Empty, nil
	}
	var root Value = s.contents
	for _, seg := range path[:len(path)-1] {
		v, err := s.dotop(root, seg.Name, seg.Args, true)
		if err != nil {
			return nil, err
		}
		if IsUndefined(v) {
			return Empty, nil
		}
		root = v
	}
	last := path[len(path)-1]
	result, err := s.assign(root, last.Name, last.Args, orUndefined(value), dflt)
	if err != nil {
		return nil, err
	}
	if IsUndefined(result) {
		return Empty, nil
	}
	return result, nil
}

// GetRef resolves all but the last segment of ident and returns an
// operation that resolves the last segment when called, appending its
// call-time arguments to args.
func (s *Stash) GetRef(ident string, args ...Value) (*Operation, error) {
	return s.getRef(identPath(ident, args))
}

// GetRefPath is GetRef for a pre-split path.
func (s *Stash) GetRefPath(path Path) (*Operation, error) {
	return s.getRef(path)
}

func (s *Stash) getRef(path Path) (*Operation, error) {
	if len(path) == 0 {
		return emptyRef(""), nil
	}
	var root Value = s.contents
	for _, seg := range path[:len(path)-1] {
		v, err := s.dotop(root, seg.Name, seg.Args, false)
		if err != nil {
			return nil, err
		}
		if IsUndefined(v) {
			return emptyRef(path.String()), nil
		}
		root = v
	}
	last := path[len(path)-1]
	return NewOperation(path.String(), func(args ...Value) (Value, error) {
		return s.dotop(root, last.Name, args, false)
	}, last.Args...), nil
}

func emptyRef(name string) *Operation {
	return NewOperation(name, func(args ...Value) (Value, error) {
		return Empty, nil
	})
}

// dotop resolves one path step: name with args against root. With lvalue
// set, missing mapping keys are created as empty mappings.
func (s *Stash) dotop(root, name Value, args []Value, lvalue bool) (Value, error) {
	root, name = orUndefined(root), orUndefined(name)
	if IsUndefined(root) || IsUndefined(name) {
		return Undefined, nil
	}
	if isPrivate(name) {
		return Undefined, nil
	}

	switch r := root.(type) {
	case *Mapping:
		return s.dotopMapping(r, name, args, lvalue)
	case *List:
		return s.dotopList(r, name, args)
	case ObjectValue:
		return s.dotopObject(r, name, args)
	case Scalar:
		if !lvalue {
			return s.dotopScalar(r, name, args)
		}
	}
	return s.unresolved(name)
}

func (s *Stash) dotopMapping(m *Mapping, name Value, args []Value, lvalue bool) (Value, error) {
	atRoot := m == s.contents
	if keys, ok := name.(*List); ok {
		return sliceMapping(m, keys), nil
	}
	key, ok := keyText(name)
	if !ok {
		return s.unresolved(name)
	}
	if v, found := m.Get(key); found && !IsUndefined(v) {
		if op, ok := v.(*Operation); ok {
			result, err := op.Call(args...)
			return s.produced(name, result, err)
		}
		return v, nil
	}
	if lvalue {
		child := NewMapping()
		m.Set(key, child)
		return child, nil
	}
	if op, ok := s.catalog.HashOp(key); ok && (!atRoot || key == "import") {
		v, err := op(m, args...)
		return s.produced(name, v, err)
	}
	if !atRoot && !s.debug {
		// Callers iterate "no match" results from nested mappings.
		return NewList(), nil
	}
	return s.unresolved(name)
}

func (s *Stash) dotopList(l *List, name Value, args []Value) (Value, error) {
	if positions, ok := name.(*List); ok {
		return sliceList(l, positions), nil
	}
	key, ok := keyText(name)
	if !ok {
		return s.unresolved(name)
	}
	if op, ok := s.catalog.ListOp(key); ok {
		v, err := op(l, args...)
		return s.produced(name, v, err)
	}
	idx, ok := indexOf(name)
	if !ok || idx < 0 || idx >= l.Len() {
		return s.unresolved(name)
	}
	if op, ok := l.Items[idx].(*Operation); ok {
		v, err := op.Call(args...)
		return s.produced(name, v, err)
	}
	return s.produced(name, l.At(idx), nil)
}

func (s *Stash) dotopObject(o ObjectValue, name Value, args []Value) (Value, error) {
	key, ok := keyText(name)
	if !ok || o.Object == nil {
		return s.unresolved(name)
	}
	if member, found := o.Object.Member(key); found {
		if op, ok := member.(*Operation); ok {
			v, err := op.Call(args...)
			return s.produced(name, v, err)
		}
		return s.produced(name, member, nil)
	}
	if op, ok := s.catalog.HashOp(key); ok {
		fields := o.Object.Fields()
		if fields == nil {
			fields = NewMapping()
		}
		v, err := op(fields, args...)
		return s.produced(name, v, err)
	}
	return s.unresolved(name)
}

func (s *Stash) dotopScalar(sc Scalar, name Value, args []Value) (Value, error) {
	key, ok := keyText(name)
	if !ok {
		return s.unresolved(name)
	}
	if op, ok := s.catalog.ScalarOp(key); ok {
		v, err := op(sc, args...)
		return s.produced(name, v, err)
	}
	if op, ok := s.catalog.ListOp(key); ok {
		v, err := op(NewList(sc), args...)
		return s.produced(name, v, err)
	}
	return s.unresolved(name)
}

// produced passes an operation's result through, treating an Undefined
// result like any other unresolved step.
func (s *Stash) produced(name, v Value, err error) (Value, error) {
	if err != nil {
		return nil, err
	}
	if IsUndefined(v) {
		return s.unresolved(name)
	}
	return v, nil
}

// unresolved is the single outcome of a step that found nothing: an
// undefined_access error in debug mode, Undefined otherwise.
func (s *Stash) unresolved(name Value) (Value, error) {
	s.logger.Debug("unresolved segment", "name", Text(name))
	if s.debug {
		return nil, undefinedAccess(name)
	}
	return Undefined, nil
}

// sliceMapping returns the values of several keys; missing keys give
// Undefined entries.
func sliceMapping(m *Mapping, keys *List) *List {
	sliced := &List{Items: make([]Value, 0, keys.Len())}
	for _, k := range keys.Items {
		key, ok := keyText(k)
		v, found := m.Get(key)
		if !ok || !found || isPrivate(k) {
			v = Undefined
		}
		sliced.Items = append(sliced.Items, v)
	}
	return sliced
}

// sliceList returns the items at several positions; invalid positions give
// Undefined entries.
func sliceList(l *List, positions *List) *List {
	sliced := &List{Items: make([]Value, 0, positions.Len())}
	for _, p := range positions.Items {
		idx, ok := indexOf(p)
		if !ok {
			sliced.Items = append(sliced.Items, Undefined)
			continue
		}
		sliced.Items = append(sliced.Items, l.At(idx))
	}
	return sliced
}

// maxListGap bounds the Undefined padding a single list assignment may add.
const maxListGap = 1 << 16

// assign stores value as name on root.
func (s *Stash) assign(root, name Value, args []Value, value Value, dflt bool) (Value, error) {
	root, name = orUndefined(root), orUndefined(name)
	if IsUndefined(root) || IsUndefined(name) {
		return Undefined, nil
	}
	if isPrivate(name) {
		return Undefined, nil
	}

	switch r := root.(type) {
	case *Mapping:
		key, ok := keyText(name)
		if !ok {
			break
		}
		if current, _ := r.Get(key); dflt && Truthy(current) {
			return Undefined, nil
		}
		r.Set(key, value)
		return value, nil
	case *List:
		idx, ok := indexOf(name)
		if !ok || idx < 0 || idx-r.Len() > maxListGap {
			break
		}
		if dflt && Truthy(r.At(idx)) {
			return Undefined, nil
		}
		r.Store(idx, value)
		return value, nil
	case ObjectValue:
		key, ok := keyText(name)
		if !ok || r.Object == nil {
			break
		}
		member, found := r.Object.Member(key)
		setter, callable := member.(*Operation)
		if !found || !callable {
			break
		}
		if dflt {
			current, err := setter.Call()
			if err != nil {
				return nil, err
			}
			if Truthy(current) {
				return Undefined, nil
			}
		}
		callArgs := make([]Value, 0, len(args)+1)
		callArgs = append(callArgs, args...)
		callArgs = append(callArgs, value)
		return setter.Call(callArgs...)
	}
	return nil, invalidAssignment(root, name)
}
