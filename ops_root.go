package stash

import (
	"strconv"
	"strings"
)

// rootOps returns the operations installed into every top-level scope.
// They are reachable only as bare names, not as segments off another
// value.
func rootOps() map[string]*Operation {
	return map[string]*Operation{
		"inc": NewOperation("inc", func(args ...Value) (Value, error) {
			return addNumber(arg(args, 0), 1), nil
		}),
		"dec": NewOperation("dec", func(args ...Value) (Value, error) {
			return addNumber(arg(args, 0), -1), nil
		}),
	}
}

// addNumber adds delta to a value, keeping floats as floats.
func addNumber(v Value, delta int64) Value {
	if s, ok := v.(Scalar); ok {
		switch n := s.v.(type) {
		case int64:
			return Int(n + delta)
		case float64:
			return Float(n + float64(delta))
		case string:
			text := strings.TrimSpace(n)
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				return Int(i + delta)
			}
			if f, err := strconv.ParseFloat(text, 64); err == nil {
				return Float(f + float64(delta))
			}
		}
	}
	return Int(toLong(v) + delta)
}
