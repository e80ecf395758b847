package failure

import (
	"fmt"
	"runtime"

	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/result/failure/datamodel"
	"github.com/pkg/errors"
)

// Named is an error that you can read a name from
type Named interface {
	Name() string
}

// WithStackTrace is an error that you can read a stack trace from
type WithStackTrace interface {
	Stack() string
}

// IPLDConvertableError is an error with a custom method to convert to an IPLD Node
type IPLDConvertableError interface {
	error
	ipld.Builder
}

type Failure interface {
	error
	Named
}

type IPLDBuilderFailure interface {
	IPLDConvertableError
	Failure
}

type NamedWithStackTrace interface {
	Named
	WithStackTrace
	Frames() errors.StackTrace
}

type namedWithStackTrace struct {
	name  string
	stack errors.StackTrace
}

func (n namedWithStackTrace) Name() string {
	return n.name
}

func (n namedWithStackTrace) Stack() string {
	return fmt.Sprintf("%+v", n.stack)
}

func (n namedWithStackTrace) Frames() errors.StackTrace {
	return n.stack
}

// NamedWithCurrentStackTrace records the stack of the caller of the function
// that calls it.
func NamedWithCurrentStackTrace(name string) NamedWithStackTrace {
	return NamedWithStackTraceSkip(name, 1)
}

// NamedWithStackTraceSkip is NamedWithCurrentStackTrace with skip further
// frames removed from the top of the recorded stack.
func NamedWithStackTraceSkip(name string, skip int) NamedWithStackTrace {
	const depth = 32

	var pcs [depth]uintptr
	n := runtime.Callers(3+skip, pcs[:])

	f := make(errors.StackTrace, n)
	for i := 0; i < n; i++ {
		f[i] = errors.Frame(pcs[i])
	}

	return namedWithStackTrace{name, f}
}

type failure struct {
	model  datamodel.FailureModel
	toIPLD func() (ipld.Node, error)
}

func (f failure) Name() string {
	if f.model.Name == nil {
		return ""
	}
	return *f.model.Name
}

func (f failure) Message() string {
	return f.model.Message
}

func (f failure) Error() string {
	return f.model.Message
}

func (f failure) Stack() string {
	if f.model.Stack == nil {
		return ""
	}
	return *f.model.Stack
}

func (f failure) ToIPLD() (ipld.Node, error) {
	if f.toIPLD != nil {
		return f.toIPLD()
	}
	return f.model.ToIPLD()
}

// New creates a failure with the given name and message.
func New(name string, message string) IPLDBuilderFailure {
	return failure{model: datamodel.FailureModel{Name: &name, Message: message}}
}

func FromError(err error) IPLDBuilderFailure {
	if f, ok := err.(IPLDBuilderFailure); ok {
		return f
	}
	model := datamodel.FailureModel{Message: err.Error()}
	if named, ok := err.(Named); ok {
		name := named.Name()
		model.Name = &name
	}
	if withStackTrace, ok := err.(WithStackTrace); ok {
		stack := withStackTrace.Stack()
		model.Stack = &stack
	}
	fail := failure{model: model}
	if builder, ok := err.(ipld.Builder); ok {
		fail.toIPLD = builder.ToIPLD
	}
	return fail
}

// Model returns the serialisable form of a failure.
func Model(f Failure) datamodel.FailureModel {
	name := f.Name()
	model := datamodel.FailureModel{Name: &name, Message: f.Error()}
	if withStackTrace, ok := f.(WithStackTrace); ok {
		if stack := withStackTrace.Stack(); stack != "" {
			model.Stack = &stack
		}
	}
	return model
}
