package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/deepnoodle-ai/stash"
	"github.com/deepnoodle-ai/stash/script"
	"github.com/fatih/color"
)

// CLI configuration
type Config struct {
	File    string
	Vars    map[string]any
	Sets    []assignment
	Evals   []assignment
	Debug   bool
	Verbose bool
	JSON    bool
	Idents  []string
}

type assignment struct {
	name  string
	value string
}

func main() {
	config := parseFlags()

	if len(config.Idents) == 0 {
		color.Red("Error: at least one identifier is required")
		flag.Usage()
		os.Exit(1)
	}

	logger := setupLogger(config.Verbose)

	opts := stash.Options{}
	if config.File != "" {
		loaded, err := stash.ReadOptionsFile(config.File)
		if err != nil {
			log.Fatalf("Failed to load stash file: %v", err)
		}
		opts = loaded
	}
	if opts.Variables == nil {
		opts.Variables = map[string]any{}
	}
	for name, value := range config.Vars {
		opts.Variables[name] = value
	}
	opts.Debug = opts.Debug || config.Debug
	opts.Logger = logger

	st := stash.New(opts)
	if config.Verbose {
		color.Blue("Scope: %s", st.ID())
	}

	for _, set := range config.Sets {
		if _, err := st.Set(set.name, stash.FromGo(parseValue(set.value))); err != nil {
			log.Fatalf("Failed to set %s: %v", set.name, err)
		}
	}

	ctx := context.Background()
	engine := script.NewEngine(script.SafeBuiltins())
	for _, eval := range config.Evals {
		value, err := engine.Eval(ctx, eval.value, st)
		if err != nil {
			log.Fatalf("Failed to evaluate %s: %v", eval.name, err)
		}
		if _, err := st.Set(eval.name, value); err != nil {
			log.Fatalf("Failed to set %s: %v", eval.name, err)
		}
	}

	results := make(map[string]any, len(config.Idents))
	failed := false
	for _, ident := range config.Idents {
		value, err := st.Get(ident)
		if err != nil {
			failed = true
			if config.JSON {
				results[ident] = stash.ClassifyError(err)
			} else {
				color.Red("%s: %v", ident, err)
			}
			continue
		}
		if config.JSON {
			results[ident] = stash.ToGo(value)
		} else {
			showValue(ident, value)
		}
	}

	if config.JSON {
		outputBytes, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			log.Fatalf("Error formatting results: %v", err)
		}
		fmt.Println(string(outputBytes))
	}
	if failed {
		os.Exit(1)
	}
}

func parseFlags() *Config {
	config := &Config{
		Vars: make(map[string]any),
	}

	flag.StringVar(&config.File, "file", "", "Path to a YAML file with variables (optional)")
	flag.StringVar(&config.File, "f", "", "Path to a YAML file with variables (shorthand)")

	var varFlags, setFlags, evalFlags stringSlice
	flag.Var(&varFlags, "var", "Variable in format key=value (can be used multiple times)")
	flag.Var(&varFlags, "v", "Variable in format key=value (shorthand, can be used multiple times)")
	flag.Var(&setFlags, "set", "Assign a dotted identifier, in format a.b.c=value (can be used multiple times)")
	flag.Var(&evalFlags, "eval", "Bind the result of a Risor expression, in format name=expression (can be used multiple times)")
	flag.Var(&evalFlags, "e", "Bind the result of a Risor expression (shorthand, can be used multiple times)")

	flag.BoolVar(&config.Debug, "debug", false, "Fail on undefined identifiers")
	flag.BoolVar(&config.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&config.JSON, "json", false, "Output results in JSON format")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Stash CLI - Resolve template variables

Usage: %s [options] <identifier> [identifier...]

Examples:
  # Resolve identifiers against a variables file
  %s -file vars.yaml user.name user.roles.size

  # Build variables on the command line
  %s -var 'items=[3,1,2]' items.sort items.join

  # Compute a variable with Risor, then resolve it
  %s -var price=10 -eval 'total=price * 1.2' total

Options:
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0])
		flag.PrintDefaults()

		fmt.Fprintf(os.Stderr, `
Value Format:
  Values given to -var and -set are parsed as JSON if possible,
  otherwise as strings.

`)
	}

	flag.Parse()

	for _, v := range varFlags {
		a := splitAssignment(v)
		config.Vars[a.name] = parseValue(a.value)
	}
	for _, v := range setFlags {
		config.Sets = append(config.Sets, splitAssignment(v))
	}
	for _, v := range evalFlags {
		config.Evals = append(config.Evals, splitAssignment(v))
	}
	config.Idents = flag.Args()
	return config
}

func splitAssignment(input string) assignment {
	parts := strings.SplitN(input, "=", 2)
	if len(parts) != 2 {
		fmt.Fprintf(os.Stderr, "Error: invalid format '%s'. Use key=value\n", input)
		os.Exit(1)
	}
	return assignment{name: parts[0], value: parts[1]}
}

// parseValue parses JSON, falling back to the raw string.
func parseValue(value string) any {
	var parsedValue any
	if err := json.Unmarshal([]byte(value), &parsedValue); err != nil {
		return value
	}
	return parsedValue
}

// Custom flag type for handling multiple values
type stringSlice []string

func (s *stringSlice) String() string {
	return strings.Join(*s, ", ")
}

func (s *stringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelError
	if verbose {
		level = slog.LevelDebug
	}
	return stash.NewLogger(level)
}

func showValue(ident string, value stash.Value) {
	switch v := value.(type) {
	case *stash.List, *stash.Mapping:
		if valueBytes, err := json.Marshal(stash.ToGo(v)); err == nil {
			fmt.Printf("%s: %s\n", color.CyanString(ident), string(valueBytes))
			return
		}
	}
	fmt.Printf("%s: %s\n", color.CyanString(ident), stash.Text(value))
}
