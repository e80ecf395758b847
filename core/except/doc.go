// Package except models exception propagation for Go code that needs
// throw/catch semantics with precise payload lifetimes.
//
// A [Thread] is one thread of control. Its Throw unwinds the Go stack (with
// panic) to the nearest enclosing Try whose handlers accept the payload.
// While a handler runs, the payload is the thread's active exception: it can
// be rethrown unchanged with Rethrow, or captured with Current into a *Ptr
// that keeps the payload alive after the handler returns.
//
// Handlers choose how they bind: [Catch] receives its own copy, made with the
// payload's Clone method when it has one; [CatchRef] binds to the stored
// payload of an exact type; [CatchAs] binds to the stored payload through an
// interface it implements, the way a base class reference would.
//
// Payloads are reference counted. The propagation in flight, every open
// handler region and every live *Ptr each hold one reference; the payload's
// Destroy method, if it has one, runs exactly once when the last reference
// is released. Reference counting is atomic so a *Ptr may be released on a
// different goroutine than the one that captured it.
//
// An exception that escapes every handler, and misuse such as Rethrow with
// no active exception, terminate the thread of control: the configured
// terminate handler is called and the goroutine panics with *Terminated.
package except
