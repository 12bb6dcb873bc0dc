package script

import (
	"context"
	"fmt"
	"sort"

	"github.com/deepnoodle-ai/stash"
	"github.com/dlclark/regexp2"
	"github.com/risor-io/risor"
	"github.com/risor-io/risor/compiler"
	"github.com/risor-io/risor/modules/all"
	"github.com/risor-io/risor/parser"
)

var identifierPattern = regexp2.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`, regexp2.None)

// Engine compiles Risor expressions that read stash variables as globals.
type Engine struct {
	builtins map[string]any
}

// NewEngine returns an engine exposing the given builtins alongside stash
// variables. Stash variables shadow builtins of the same name.
func NewEngine(builtins map[string]any) *Engine {
	if builtins == nil {
		builtins = map[string]any{}
	}
	return &Engine{builtins: builtins}
}

// Program is a compiled expression bound to a fixed set of global names.
type Program struct {
	engine *Engine
	code   *compiler.Code
	names  []string
}

// Compile parses and compiles code. names lists the stash variables the
// code may reference.
func (e *Engine) Compile(ctx context.Context, code string, names []string) (*Program, error) {
	ast, err := parser.Parse(ctx, code)
	if err != nil {
		return nil, err
	}

	globalNames := make([]string, 0, len(e.builtins)+len(names))
	seen := make(map[string]bool, len(e.builtins)+len(names))
	for name := range e.builtins {
		globalNames = append(globalNames, name)
		seen[name] = true
	}
	for _, name := range names {
		if !seen[name] {
			globalNames = append(globalNames, name)
			seen[name] = true
		}
	}
	sort.Strings(globalNames)

	compiledCode, err := compiler.Compile(ast, compiler.WithGlobalNames(globalNames))
	if err != nil {
		return nil, err
	}
	return &Program{engine: e, code: compiledCode, names: names}, nil
}

// Evaluate runs the program against the current bindings of st. Names
// that are no longer bound evaluate to nil.
func (p *Program) Evaluate(ctx context.Context, st *stash.Stash) (stash.Value, error) {
	globals := make(map[string]any, len(p.engine.builtins)+len(p.names))
	for name, value := range p.engine.builtins {
		globals[name] = value
	}
	for _, name := range p.names {
		value, _ := st.GetVariable(name)
		globals[name] = FromValue(value)
	}
	result, err := risor.EvalCode(ctx, p.code, risor.WithGlobals(globals))
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate risor expression: %w", err)
	}
	return ToValue(ctx, result), nil
}

// Eval compiles and evaluates code against every public variable of st.
func (e *Engine) Eval(ctx context.Context, code string, st *stash.Stash) (stash.Value, error) {
	program, err := e.Compile(ctx, code, Names(st))
	if err != nil {
		return nil, err
	}
	return program.Evaluate(ctx, st)
}

// Names returns the stash variables usable as Risor globals: public names
// that are valid identifiers.
func Names(st *stash.Stash) []string {
	var names []string
	for _, name := range st.ListVariables() {
		if ok, _ := identifierPattern.MatchString(name); !ok || name[0] == '_' {
			continue
		}
		names = append(names, name)
	}
	return names
}

// SafeBuiltins returns the Risor builtins listed by SafeNames.
func SafeBuiltins() map[string]any {
	safe := SafeNames()
	builtins := map[string]any{}
	for name, value := range all.Builtins() {
		if safe[name] {
			builtins[name] = value
		}
	}
	return builtins
}

// SafeNames returns the Risor built-in names that are deterministic and
// free of side effects.
func SafeNames() map[string]bool {
	return map[string]bool{
		"all":         true,
		"any":         true,
		"base64":      true,
		"bool":        true,
		"byte":        true,
		"bytes":       true,
		"call":        true,
		"chunk":       true,
		"coalesce":    true,
		"decode":      true,
		"encode":      true,
		"error":       true,
		"errorf":      true,
		"errors":      true,
		"float":       true,
		"fmt":         true,
		"getattr":     true,
		"int":         true,
		"is_hashable": true,
		"iter":        true,
		"json":        true,
		"keys":        true,
		"len":         true,
		"list":        true,
		"map":         true,
		"math":        true,
		"regexp":      true,
		"reversed":    true,
		"set":         true,
		"sorted":      true,
		"sprintf":     true,
		"string":      true,
		"strings":     true,
		"try":         true,
		"type":        true,
	}
}
