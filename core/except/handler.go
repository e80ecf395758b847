package except

import (
	"fmt"
	"reflect"
)

// Handler is one catch clause of a Try.
type Handler interface {
	// bind returns the clause body bound to o, or false if the clause does
	// not accept o.
	bind(o *object) (func(), bool)
}

type handlerFunc func(o *object) (func(), bool)

func (h handlerFunc) bind(o *object) (func(), bool) {
	return h(o)
}

// Catch accepts payloads of type T by value. A concrete T matches that exact
// dynamic type, an interface T matches any payload implementing it. The
// handler receives its own copy: if the payload type P has a method
// Clone() P the copy is made with it.
func Catch[T any](fn func(T)) Handler {
	typ := reflect.TypeFor[T]()
	return handlerFunc(func(o *object) (func(), bool) {
		v, ok := o.find(typ)
		if !ok {
			return nil, false
		}
		// the copy is made inside the handler region so a Clone that throws
		// still lets the region release the payload
		return func() { fn(copyValue(v).Interface().(T)) }, true
	})
}

// CatchRef accepts payloads whose dynamic type is exactly T and binds the
// handler to the stored payload itself. The pointer is valid until the
// handler region ends unless the exception has been captured. Use CatchAs to
// bind by interface.
func CatchRef[T any](fn func(*T)) Handler {
	typ := reflect.TypeFor[T]()
	return handlerFunc(func(o *object) (func(), bool) {
		for _, v := range o.ancestry() {
			if v.Type() == typ && v.CanAddr() {
				ref := v.Addr().Interface().(*T)
				return func() { fn(ref) }, true
			}
		}
		return nil, false
	})
}

// CatchAs accepts payloads implementing the interface T and binds the
// handler to the stored payload without copying it. The handler gets the
// payload's address whenever the payload is addressable, so it sees, and
// makes, changes visible to every other owner. The dynamic type of the
// payload is unchanged; Thread.Current reports it.
func CatchAs[T any](fn func(T)) Handler {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Interface {
		panic(fmt.Sprintf("except: CatchAs needs an interface type, got %s", typ))
	}
	return handlerFunc(func(o *object) (func(), bool) {
		for _, v := range o.ancestry() {
			r := receiver(v)
			if r.Type().Implements(typ) {
				ref := r.Interface().(T)
				return func() { fn(ref) }, true
			}
		}
		return nil, false
	})
}

// CatchAll accepts any payload. Use Thread.Current inside fn to get at it.
func CatchAll(fn func()) Handler {
	return handlerFunc(func(o *object) (func(), bool) {
		return fn, true
	})
}

// copyValue copies v, going through a Clone method returning the same type
// when the payload has one.
func copyValue(v reflect.Value) reflect.Value {
	m := receiver(v).MethodByName("Clone")
	if m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 0 && mt.NumOut() == 1 && mt.Out(0) == v.Type() {
			return m.Call(nil)[0]
		}
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}
