package except

import (
	edm "github.com/kstd-project/go-kstd/core/except/datamodel"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/result"
	"github.com/kstd-project/go-kstd/core/result/failure"
	fdm "github.com/kstd-project/go-kstd/core/result/failure/datamodel"
	"github.com/kstd-project/go-kstd/core/result/ok"
)

// ExceptionFailure is a captured exception materialised as a failure value.
// It holds no reference to the payload.
type ExceptionFailure struct {
	model edm.ExceptionModel
}

func (e ExceptionFailure) Name() string {
	return e.model.Name
}

func (e ExceptionFailure) Error() string {
	return e.model.Message
}

func (e ExceptionFailure) Stack() string {
	if e.model.Stack == nil {
		return ""
	}
	return *e.model.Stack
}

// Nested returns the chain of exceptions this one was thrown with.
func (e ExceptionFailure) Nested() []fdm.FailureModel {
	return e.model.Nested
}

func (e ExceptionFailure) ToIPLD() (ipld.Node, error) {
	mdl := e.model
	return ipld.WrapWithRecovery(&mdl, edm.ExceptionType())
}

func (e ExceptionFailure) Model() edm.ExceptionModel {
	return e.model
}

var _ failure.IPLDBuilderFailure = ExceptionFailure{}

// Failure describes the captured exception, following nested wrappers. It
// returns nil for the null pointer.
func (p *Ptr) Failure() failure.IPLDBuilderFailure {
	if p.IsNil() {
		return nil
	}
	mdl := edm.ExceptionModel{Name: p.o.typeName(), Message: p.o.message(), Nested: []fdm.FailureModel{}}
	if p.o.site != nil {
		stack := p.o.site.Stack()
		mdl.Stack = &stack
	}
	for o := nestedObject(p.o); o != nil; o = nestedObject(o) {
		name := o.typeName()
		f := fdm.FailureModel{Name: &name, Message: o.message()}
		if o.site != nil {
			stack := o.site.Stack()
			f.Stack = &stack
		}
		mdl.Nested = append(mdl.Nested, f)
	}
	return ExceptionFailure{mdl}
}

func nestedObject(o *object) *object {
	n, ok := o.val.Interface().(*nested)
	if !ok || n == nil || n.ptr.IsNil() {
		return nil
	}
	return n.ptr.o
}

// Catching runs body on t and reports its value, or the exception that
// escaped it as a failure.
func Catching[T any](t *Thread, body func() T) (res result.Result[T, failure.IPLDBuilderFailure]) {
	t.Try(func() {
		res = result.Ok[T, failure.IPLDBuilderFailure](body())
	}, CatchAll(func() {
		p := t.Current()
		defer p.Release()
		res = result.Error[T](p.Failure())
	}))
	return
}

// Do is Catching for bodies run only for their effects.
func Do(t *Thread, body func()) result.Result[ok.Unit, failure.IPLDBuilderFailure] {
	return Catching(t, func() ok.Unit {
		body()
		return ok.Unit{}
	})
}

// FailureFromIPLD reads back a failure produced by ExceptionFailure.ToIPLD. A
// node that only carries the generic failure fields yields a failure with no
// nested chain.
func FailureFromIPLD(nd ipld.Node) ExceptionFailure {
	mdl, err := ipld.Rebind[edm.ExceptionModel](nd, edm.ExceptionType())
	if err == nil {
		if mdl.Nested == nil {
			mdl.Nested = []fdm.FailureModel{}
		}
		return ExceptionFailure{mdl}
	}
	f := fdm.Bind(nd)
	mdl = edm.ExceptionModel{Message: f.Message, Stack: f.Stack, Nested: []fdm.FailureModel{}}
	if f.Name != nil {
		mdl.Name = *f.Name
	}
	return ExceptionFailure{mdl}
}
