package stash

// VariableContainer is a container for named variables.
type VariableContainer interface {

	// SetVariable binds a variable.
	SetVariable(key string, value Value)

	// DeleteVariable removes a variable.
	DeleteVariable(key string)

	// ListVariables returns the sorted variable names.
	ListVariables() []string

	// GetVariable returns the value of a variable.
	GetVariable(key string) (value Value, exists bool)
}

// PatchOptions is used to create a Patch.
type PatchOptions struct {
	Variable string
	Value    Value
	Delete   bool
}

// Patch represents a change to a variable binding.
type Patch struct {
	variable string
	value    Value
	delete   bool
}

func (p Patch) Variable() string {
	return p.variable
}

func (p Patch) Value() Value {
	return p.value
}

func (p Patch) Delete() bool {
	return p.delete
}

// NewPatch creates a new Patch.
func NewPatch(opts PatchOptions) Patch {
	return Patch{
		variable: opts.Variable,
		value:    orUndefined(opts.Value),
		delete:   opts.Delete,
	}
}

// GeneratePatches compares two sets of bindings and returns patches for
// the differences, ordered by variable name. Bindings are compared by
// identity: a container mutated in place is not a change.
func GeneratePatches(original, modified *Mapping) []Patch {
	var patches []Patch
	for _, key := range modified.Keys() {
		currentValue, _ := modified.Get(key)
		if originalValue, exists := original.Get(key); exists {
			if !sameValue(originalValue, currentValue) {
				patches = append(patches, Patch{
					variable: key,
					value:    currentValue,
				})
			}
		} else {
			patches = append(patches, Patch{
				variable: key,
				value:    currentValue,
			})
		}
	}
	for _, key := range original.Keys() {
		if !modified.Has(key) {
			patches = append(patches, Patch{
				variable: key,
				delete:   true,
			})
		}
	}
	return patches
}

// ApplyPatches applies a list of patches to a variable container.
func ApplyPatches(container VariableContainer, patches []Patch) {
	for _, patch := range patches {
		if patch.delete {
			container.DeleteVariable(patch.variable)
		} else {
			container.SetVariable(patch.variable, patch.value)
		}
	}
}

// GetVariable returns a top-level binding without virtual method lookup.
func (s *Stash) GetVariable(key string) (Value, bool) {
	return s.contents.Get(key)
}

// SetVariable binds a top-level name directly.
func (s *Stash) SetVariable(key string, value Value) {
	s.contents.Set(key, value)
}

// DeleteVariable removes a top-level binding.
func (s *Stash) DeleteVariable(key string) {
	s.contents.Delete(key)
}

// ListVariables returns the sorted top-level names, private ones included.
func (s *Stash) ListVariables() []string {
	return s.contents.Keys()
}

// Changes returns the bindings this scope adds, rebinds or removes
// relative to the scope it was cloned from. A root scope has no changes.
func (s *Stash) Changes() []Patch {
	if s.parent == nil {
		return nil
	}
	return GeneratePatches(s.parent.contents, s.contents)
}
