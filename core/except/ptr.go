package except

import (
	"reflect"
	"sync/atomic"
)

// Ptr is a captured exception: a counted reference that keeps a payload
// alive independently of the handler region that observed it.
//
// A nil *Ptr is the null exception pointer. Every non-nil *Ptr must be
// released exactly once; Release is idempotent per handle. Clone gives a
// second handle to the same payload without copying it.
type Ptr struct {
	o        *object
	released atomic.Bool
}

func newPtr(o *object) *Ptr {
	o.retain()
	return &Ptr{o: o}
}

// IsNil reports whether p is the null pointer or has been released.
func (p *Ptr) IsNil() bool {
	return p == nil || p.o == nil || p.released.Load()
}

// Clone returns a new handle sharing the payload.
func (p *Ptr) Clone() *Ptr {
	if p.IsNil() {
		return nil
	}
	return newPtr(p.o)
}

// Release drops this handle's reference. The payload is destroyed when the
// last reference goes.
func (p *Ptr) Release() {
	if p == nil || p.o == nil {
		return
	}
	if p.released.CompareAndSwap(false, true) {
		p.o.release()
	}
}

// Value returns the payload. For a nested wrapper this is the wrapper.
func (p *Ptr) Value() any {
	if p.IsNil() {
		return nil
	}
	return p.o.val.Interface()
}

// Type returns the dynamic type of the payload.
func (p *Ptr) Type() reflect.Type {
	if p.IsNil() {
		return nil
	}
	return p.o.val.Type()
}

// TypeName names the dynamic type of the thrown value, looking through a
// nested wrapper.
func (p *Ptr) TypeName() string {
	if p.IsNil() {
		return "<nil>"
	}
	return p.o.typeName()
}

// Same reports whether p and q refer to the same payload.
func (p *Ptr) Same(q *Ptr) bool {
	if p.IsNil() || q.IsNil() {
		return p.IsNil() && q.IsNil()
	}
	return p.o == q.o
}

func (p *Ptr) message() string {
	if p.IsNil() {
		return ""
	}
	return p.o.message()
}

func (p *Ptr) String() string {
	if p.IsNil() {
		return "<nil>"
	}
	return p.TypeName() + ": " + p.message()
}
