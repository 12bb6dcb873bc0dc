package stash

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.jetify.com/typeid"
	"gopkg.in/yaml.v3"
)

// NewScopeID returns a new identifier for a stash scope.
func NewScopeID() string {
	id, err := typeid.WithPrefix("scope")
	if err != nil {
		panic(err)
	}
	return id.String()
}

// UndefinedFunc decides what Get returns for an identifier that resolved
// to nothing. Outside debug mode a missing key below a nested mapping
// resolves to an empty list, so such identifiers never reach the hook.
type UndefinedFunc func(ident string, args []Value) Value

// undefinedEmpty is the default undefined hook.
func undefinedEmpty(ident string, args []Value) Value {
	return Empty
}

// Options configures a new stash.
type Options struct {
	Variables map[string]any `json:"variables,omitempty" yaml:"variables,omitempty"`
	Debug     bool           `json:"debug,omitempty" yaml:"debug,omitempty"`
	ID        string         `json:"id,omitempty" yaml:"id,omitempty"`
	Logger    *slog.Logger   `json:"-" yaml:"-"`
	Undefined UndefinedFunc  `json:"-" yaml:"-"`
	Catalog   *Catalog       `json:"-" yaml:"-"`
}

// Stash is one scope of template variables. Clones form a chain of scopes
// back to the root stash; each scope owns a flat copy of its bindings.
type Stash struct {
	id         string
	contents   *Mapping
	parent     *Stash
	debug      bool
	catalog    *Catalog
	undefined  UndefinedFunc
	logger     *slog.Logger
	baseLogger *slog.Logger
}

// New returns a root stash holding the given variables. Every root scope
// also binds "global" to an empty mapping plus the inc and dec operations,
// which take precedence over variables of the same name.
func New(opts Options) *Stash {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Undefined == nil {
		opts.Undefined = undefinedEmpty
	}
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.ID == "" {
		opts.ID = NewScopeID()
	}

	contents := NewMapping()
	contents.Set("global", NewMapping())
	for name, value := range opts.Variables {
		contents.Set(name, FromGo(value))
	}
	for name, op := range rootOps() {
		contents.Set(name, op)
	}

	debug := opts.Debug
	if flag, ok := contents.Get("_DEBUG"); ok && Truthy(flag) {
		debug = true
	}

	s := &Stash{
		id:         opts.ID,
		contents:   contents,
		debug:      debug,
		catalog:    opts.Catalog,
		undefined:  opts.Undefined,
		baseLogger: opts.Logger,
	}
	s.logger = opts.Logger.With("scope_id", s.id)
	return s
}

// LoadFile builds a stash from Options stored in a YAML file.
func LoadFile(path string) (*Stash, error) {
	opts, err := ReadOptionsFile(path)
	if err != nil {
		return nil, err
	}
	return New(opts), nil
}

// LoadString builds a stash from Options given as a YAML string.
func LoadString(data string) (*Stash, error) {
	opts, err := ParseOptions([]byte(data))
	if err != nil {
		return nil, err
	}
	return New(opts), nil
}

// ReadOptionsFile reads Options from a YAML file.
func ReadOptionsFile(path string) (Options, error) {
	yamlData, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read stash file: %w", err)
	}
	return ParseOptions(yamlData)
}

// ParseOptions decodes Options from YAML.
func ParseOptions(data []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("failed to unmarshal stash file: %w", err)
	}
	return opts, nil
}

// ID returns the scope identifier.
func (s *Stash) ID() string {
	return s.id
}

// Debug reports whether unresolved access raises errors.
func (s *Stash) Debug() bool {
	return s.debug
}

// Catalog returns the virtual methods used by this stash and its clones.
func (s *Stash) Catalog() *Catalog {
	return s.catalog
}

// Parent returns the scope this stash was cloned from, or nil for a root.
func (s *Stash) Parent() *Stash {
	return s.parent
}

// Contents returns the scope's bindings. The mapping is live: changes to
// it are visible to the stash.
func (s *Stash) Contents() *Mapping {
	return s.contents
}

// Clone returns a new scope holding a copy of this scope's bindings with
// overrides applied on top. A mapping under the "import" key is merged
// key by key into the new scope instead of being bound as a variable.
// The overrides mapping itself is not modified.
func (s *Stash) Clone(overrides *Mapping) *Stash {
	clone := &Stash{
		id:         NewScopeID(),
		contents:   s.contents.Copy(),
		parent:     s,
		debug:      s.debug,
		catalog:    s.catalog,
		undefined:  s.undefined,
		baseLogger: s.baseLogger,
	}
	clone.logger = s.baseLogger.With("scope_id", clone.id)
	clone.apply(overrides)
	clone.logger.Debug("cloned scope", "parent_id", s.id)
	return clone
}

// Declone returns the parent scope, or s itself when it is a root.
func (s *Stash) Declone() *Stash {
	if s.parent == nil {
		return s
	}
	s.logger.Debug("declone scope", "parent_id", s.parent.id)
	return s.parent
}

// Update merges params into this scope in place, with the same "import"
// handling as Clone.
func (s *Stash) Update(params *Mapping) {
	s.apply(params)
	s.logger.Debug("updated scope")
}

func (s *Stash) apply(params *Mapping) {
	if params == nil {
		return
	}
	imported, _ := params.Get("import")
	importMapping, isMapping := imported.(*Mapping)
	for _, key := range params.Keys() {
		if key == "import" && isMapping {
			continue
		}
		v, _ := params.Get(key)
		s.contents.Set(key, v)
	}
	if isMapping {
		deepMerge(s.contents, importMapping)
	}
}

// deepMerge copies src into dst. Where both sides hold a mapping the two
// are merged recursively into a fresh mapping, so mappings shared with
// other scopes are never modified.
func deepMerge(dst, src *Mapping) {
	for _, key := range src.Keys() {
		v, _ := src.Get(key)
		incoming, ok := v.(*Mapping)
		if !ok {
			dst.Set(key, v)
			continue
		}
		existing, _ := dst.Get(key)
		if current, ok := existing.(*Mapping); ok {
			merged := current.Copy()
			deepMerge(merged, incoming)
			dst.Set(key, merged)
			continue
		}
		dst.Set(key, incoming.Copy())
	}
}
