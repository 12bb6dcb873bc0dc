package stash

import (
	"fmt"
	"reflect"

	"gopkg.in/yaml.v3"
)

// NewFunction returns an operation for the given function.
func NewFunction(name string, fn Func) *Operation {
	return NewOperation(name, fn)
}

// TypedFunction wraps a function taking one typed parameter as an
// operation. The first argument is decoded into TParams through its yaml
// field tags, so a mapping argument fills a struct. Struct results are
// encoded back into mappings.
func TypedFunction[TParams, TResult any](name string, fn func(params TParams) (TResult, error)) *Operation {
	return NewOperation(name, func(args ...Value) (Value, error) {
		var params TParams
		if err := decodeValue(arg(args, 0), &params); err != nil {
			return nil, invalidArgument(name, err)
		}
		result, err := fn(params)
		if err != nil {
			return nil, err
		}
		return encodeValue(result)
	})
}

func decodeValue(v Value, target any) error {
	if IsUndefined(v) {
		return nil
	}
	data, err := yaml.Marshal(ToGo(v))
	if err != nil {
		return fmt.Errorf("failed to encode argument: %w", err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode argument: %w", err)
	}
	return nil
}

func encodeValue(result any) (Value, error) {
	rv := reflect.ValueOf(result)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return FromGo(result), nil
	}
	data, err := yaml.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	var plain map[string]any
	if err := yaml.Unmarshal(data, &plain); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return FromGo(plain), nil
}
