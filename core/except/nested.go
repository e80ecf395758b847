package except

import (
	"reflect"
)

// NestedException is implemented by payloads that carry the exception that
// was active when they were thrown.
type NestedException interface {
	// NestedPtr returns the captured exception, or nil if nothing was active
	// at the throw point. The pointer is owned by the wrapper; Clone it to
	// keep it past the wrapper's lifetime.
	NestedPtr() *Ptr
	// RethrowNested propagates the captured exception on t. With nothing
	// captured it terminates t with ErrNoNestedException.
	RethrowNested(t *Thread)
}

// nested wraps a thrown value together with the exception active at the
// throw point. Handlers for the wrapped value's type also accept it.
type nested struct {
	val reflect.Value
	ptr *Ptr
}

func (n *nested) NestedPtr() *Ptr {
	return n.ptr
}

func (n *nested) RethrowNested(t *Thread) {
	if n.ptr.IsNil() {
		t.terminate(ErrNoNestedException)
	}
	t.RethrowPtr(n.ptr)
}

// Value returns the wrapped value.
func (n *nested) Value() any {
	return n.val.Interface()
}

func (n *nested) finalize() {
	destroyValue(n.val)
	n.ptr.Release()
}

// ThrowWithNested throws v wrapped together with a capture of the active
// exception, if any. A v that already implements NestedException is thrown
// as is.
func (t *Thread) ThrowWithNested(v any) {
	if v == nil {
		t.terminate(ErrNilPayload)
	}
	if _, ok := v.(NestedException); ok {
		t.throw(v, 1)
	}
	t.throw(&nested{val: box(v), ptr: t.Current()}, 1)
}

// RethrowIfNested rethrows the exception nested in v when v carries one.
func RethrowIfNested(t *Thread, v any) {
	if ne, ok := v.(NestedException); ok {
		ne.RethrowNested(t)
	}
}

// RethrowActiveNested rethrows the exception nested in the active exception,
// if the active exception is a nested wrapper. Handlers that caught the
// wrapped value rather than the wrapper use this to reach the cause.
func (t *Thread) RethrowActiveNested() {
	o := t.active()
	if o == nil {
		return
	}
	if ne, ok := o.val.Interface().(NestedException); ok {
		ne.RethrowNested(t)
	}
}
