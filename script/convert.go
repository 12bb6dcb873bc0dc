package script

import (
	"context"
	"sort"
	"time"

	"github.com/deepnoodle-ai/stash"
	"github.com/risor-io/risor/object"
)

// ToValue converts a Risor object to a stash value. Maps become mappings,
// lists and sets become lists, callables become operations and anything
// else is wrapped as a host object.
func ToValue(ctx context.Context, obj object.Object) stash.Value {
	switch o := obj.(type) {
	case nil:
		return stash.Undefined
	case *object.NilType:
		return stash.Undefined
	case *object.String:
		return stash.String(o.Value())
	case *object.Int:
		return stash.Int(o.Value())
	case *object.Float:
		return stash.Float(o.Value())
	case *object.Bool:
		return stash.Bool(o.Value())
	case *object.Time:
		return stash.String(o.Value().Format(time.RFC3339))
	case *object.Error:
		return stash.String(o.Value().Error())
	case *object.List:
		items := o.Value()
		list := &stash.List{Items: make([]stash.Value, 0, len(items))}
		for _, item := range items {
			list.Items = append(list.Items, ToValue(ctx, item))
		}
		return list
	case *object.Set:
		var items []object.Object
		for _, item := range o.Value() {
			items = append(items, item)
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].Inspect() < items[j].Inspect()
		})
		list := &stash.List{Items: make([]stash.Value, 0, len(items))}
		for _, item := range items {
			list.Items = append(list.Items, ToValue(ctx, item))
		}
		return list
	case *object.Map:
		m := stash.NewMapping()
		for key, item := range o.Value() {
			m.Set(key, ToValue(ctx, item))
		}
		return m
	case object.Callable:
		return callableOperation(ctx, "risor", o)
	default:
		return stash.NewObject(&Object{ctx: ctx, obj: obj})
	}
}

// FromValue converts a stash value to a Risor object. Operations become
// builtins that call back into the stash; host objects that came from
// Risor are unwrapped.
func FromValue(value stash.Value) object.Object {
	switch v := value.(type) {
	case nil:
		return object.Nil
	case stash.Scalar:
		switch s := v.Interface().(type) {
		case string:
			return object.NewString(s)
		case int64:
			return object.NewInt(s)
		case float64:
			return object.NewFloat(s)
		case bool:
			return object.NewBool(s)
		}
		return object.NewString(v.Text())
	case *stash.List:
		items := make([]object.Object, 0, v.Len())
		for _, item := range v.Items {
			items = append(items, FromValue(item))
		}
		return object.NewList(items)
	case *stash.Mapping:
		items := make(map[string]object.Object, v.Len())
		for _, key := range v.Keys() {
			item, _ := v.Get(key)
			items[key] = FromValue(item)
		}
		return object.NewMap(items)
	case stash.ObjectValue:
		if o, ok := v.Object.(*Object); ok {
			return o.obj
		}
		if v.Object == nil {
			return object.Nil
		}
		return FromValue(v.Object.Fields())
	case *stash.Operation:
		return operationBuiltin(v)
	default:
		return object.Nil
	}
}

func operationBuiltin(op *stash.Operation) *object.Builtin {
	return object.NewBuiltin(op.Name, func(ctx context.Context, args ...object.Object) object.Object {
		values := make([]stash.Value, 0, len(args))
		for _, a := range args {
			values = append(values, ToValue(ctx, a))
		}
		result, err := op.Call(values...)
		if err != nil {
			return object.NewError(err)
		}
		return FromValue(result)
	})
}

// callableOperation wraps a Risor callable as a stash operation. A raised
// Risor error is returned as the operation's error.
func callableOperation(ctx context.Context, name string, fn object.Callable) *stash.Operation {
	return stash.NewOperation(name, func(args ...stash.Value) (stash.Value, error) {
		objs := make([]object.Object, 0, len(args))
		for _, a := range args {
			objs = append(objs, FromValue(a))
		}
		result := fn.Call(ctx, objs...)
		if errObj, ok := result.(*object.Error); ok {
			return nil, errObj.Value()
		}
		return ToValue(ctx, result), nil
	})
}
