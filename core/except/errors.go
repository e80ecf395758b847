package except

import (
	"errors"
	"fmt"
)

// UsageError reports a call that has no well defined propagation target.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) Name() string {
	return "UsageError"
}

var (
	// ErrNoActiveException is the reason a thread terminates when Rethrow is
	// called outside of a handler.
	ErrNoActiveException = &UsageError{"rethrow with no active exception"}
	// ErrNilPayload is the reason a thread terminates when nil is thrown.
	ErrNilPayload = &UsageError{"throw with nil payload"}
	// ErrNilPtr is the reason a thread terminates when a nil or released
	// *Ptr is rethrown.
	ErrNilPtr = &UsageError{"rethrow of a null exception pointer"}
	// ErrNoNestedException is the reason a thread terminates when
	// RethrowNested is called on a wrapper that captured nothing.
	ErrNoNestedException = &UsageError{"rethrow_nested with no nested exception"}
)

// UnhandledExceptionError is the reason a thread terminates when an
// exception escapes every handler. It owns a reference to the exception,
// which the terminate handler may inspect and must Release if it wants the
// payload destroyed.
type UnhandledExceptionError struct {
	Exception *Ptr
}

func (e *UnhandledExceptionError) Error() string {
	return fmt.Sprintf("unhandled exception of type %s: %s", e.Exception.TypeName(), e.Exception.message())
}

func (e *UnhandledExceptionError) Name() string {
	return "UnhandledException"
}

// Terminated is the panic value a thread of control ends with when it is
// terminated. Try never catches it.
type Terminated struct {
	Thread uint64
	Reason error
}

func (t *Terminated) Error() string {
	return fmt.Sprintf("thread %d terminated: %s", t.Thread, t.Reason)
}

func (t *Terminated) Unwrap() error {
	return t.Reason
}

// IsUsageError reports whether err is or wraps a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
