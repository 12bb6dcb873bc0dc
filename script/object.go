package script

import (
	"context"

	"github.com/deepnoodle-ai/stash"
	"github.com/risor-io/risor/object"
)

// Object exposes a Risor object to the stash. Attributes become members;
// callable attributes become operations invoked with the path arguments.
type Object struct {
	ctx context.Context
	obj object.Object
}

// NewObject wraps a Risor object as a stash host object.
func NewObject(ctx context.Context, obj object.Object) stash.ObjectValue {
	return stash.NewObject(&Object{ctx: ctx, obj: obj})
}

// Member returns the named attribute of the wrapped object.
func (o *Object) Member(name string) (stash.Value, bool) {
	attr, ok := o.obj.GetAttr(name)
	if !ok {
		return nil, false
	}
	if fn, ok := attr.(object.Callable); ok {
		return callableOperation(o.ctx, name, fn), true
	}
	return ToValue(o.ctx, attr), true
}

// Fields returns the wrapped object's map entries, if it is a map.
func (o *Object) Fields() *stash.Mapping {
	if m, ok := o.obj.(*object.Map); ok {
		fields, _ := ToValue(o.ctx, m).(*stash.Mapping)
		return fields
	}
	return stash.NewMapping()
}

// Risor returns the wrapped object.
func (o *Object) Risor() object.Object {
	return o.obj
}

func (o *Object) String() string {
	return o.obj.Inspect()
}
