package except

import (
	"fmt"
	"reflect"
	"sync/atomic"

	"github.com/kstd-project/go-kstd/core/result/failure"
)

// Destroyer is implemented by payloads that need to know when the last
// reference to them is released.
type Destroyer interface {
	Destroy()
}

// finalizer is implemented by payloads owned by this package that hold
// references of their own.
type finalizer interface {
	finalize()
}

// object is the control block of a thrown payload.
type object struct {
	refs atomic.Int64
	// val is addressable so handlers can bind to it by reference.
	val  reflect.Value
	site failure.NamedWithStackTrace
}

func newObject(v any, site failure.NamedWithStackTrace) *object {
	o := &object{val: box(v), site: site}
	o.refs.Store(1)
	return o
}

// box copies v into fresh addressable storage.
func box(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	b := reflect.New(rv.Type()).Elem()
	b.Set(rv)
	return b
}

// receiver returns the value whose method set covers both value and pointer
// receivers of the stored type.
func receiver(v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Pointer && v.CanAddr() {
		return v.Addr()
	}
	return v
}

func (o *object) retain() {
	if o.refs.Add(1) <= 1 {
		panic("except: retain of a destroyed exception")
	}
}

func (o *object) release() {
	n := o.refs.Add(-1)
	if n == 0 {
		o.destroy()
		return
	}
	if n < 0 {
		panic("except: exception released more often than retained")
	}
}

func (o *object) destroy() {
	log.Debugw("destroying exception", "type", o.typeName())
	destroyValue(o.val)
}

func destroyValue(v reflect.Value) {
	r := receiver(v)
	if !r.IsValid() || (r.Kind() == reflect.Pointer && r.IsNil()) {
		return
	}
	if f, ok := r.Interface().(finalizer); ok {
		f.finalize()
	}
	if d, ok := r.Interface().(Destroyer); ok {
		d.Destroy()
	}
}

// ancestry lists the values a handler may bind to, most derived first. A
// nested wrapper also matches handlers for the value it wraps.
func (o *object) ancestry() []reflect.Value {
	vs := []reflect.Value{o.val}
	if n, ok := o.val.Interface().(*nested); ok && n != nil {
		vs = append(vs, n.val)
	}
	return vs
}

// find returns the first value in the ancestry that is, or implements, typ.
func (o *object) find(typ reflect.Type) (reflect.Value, bool) {
	for _, v := range o.ancestry() {
		if v.Type() == typ {
			return v, true
		}
		if typ.Kind() == reflect.Interface && v.Type().Implements(typ) {
			return v, true
		}
	}
	return reflect.Value{}, false
}

func (o *object) typeName() string {
	if n, ok := o.val.Interface().(*nested); ok && n != nil {
		return n.val.Type().String()
	}
	return o.val.Type().String()
}

func (o *object) message() string {
	v := o.val
	if n, ok := v.Interface().(*nested); ok && n != nil {
		v = n.val
	}
	switch p := receiver(v).Interface().(type) {
	case error:
		return p.Error()
	case fmt.Stringer:
		return p.String()
	}
	return fmt.Sprintf("%+v", v.Interface())
}
