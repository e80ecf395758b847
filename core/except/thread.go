package except

import (
	"fmt"
	"sync"
	"sync/atomic"

	logging "github.com/ipfs/go-log/v2"
	"github.com/kstd-project/go-kstd/core/result/failure"
)

var log = logging.Logger("except")

// Thread is a thread of control: it owns the stack of handler regions that
// determines the active exception. A Thread must only be used by the
// goroutine running it.
type Thread struct {
	id          uint64
	name        string
	onTerminate func(error)
	// handling holds one entry per open handler region, innermost last. The
	// last entry is the active exception.
	handling   []*object
	registered bool
}

// unwinding is the panic value carrying an exception to its handler. It
// owns one reference to obj.
type unwinding struct {
	thread *Thread
	obj    *object
}

var nextThreadID atomic.Uint64

var registry = struct {
	sync.Mutex
	slots map[uint64]*Thread
}{slots: map[uint64]*Thread{}}

// Threads returns the number of threads of control that currently have an
// exception slot.
func Threads() int {
	registry.Lock()
	defer registry.Unlock()
	return len(registry.slots)
}

// Run executes fn as a thread of control. Its exception slot is created on
// the first throw and removed when fn returns. An exception escaping fn
// terminates the thread. The returned error only reports invalid options.
func Run(fn func(t *Thread), options ...Option) error {
	cfg := threadConfig{}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return err
		}
	}

	t := &Thread{
		id:          nextThreadID.Add(1),
		name:        cfg.name,
		onTerminate: cfg.onTerminate,
	}
	if t.name == "" {
		t.name = fmt.Sprintf("thread-%d", t.id)
	}
	defer t.unregister()

	if u := t.run(func() { fn(t) }); u != nil {
		t.terminate(&UnhandledExceptionError{Exception: &Ptr{o: u.obj}})
	}
	return nil
}

// ID identifies the thread in logs and Terminated values.
func (t *Thread) ID() uint64 {
	return t.id
}

func (t *Thread) Name() string {
	return t.name
}

func (t *Thread) register() {
	if t.registered {
		return
	}
	registry.Lock()
	registry.slots[t.id] = t
	registry.Unlock()
	t.registered = true
	log.Debugw("registered exception slot", "thread", t.name)
}

func (t *Thread) unregister() {
	if !t.registered {
		return
	}
	registry.Lock()
	delete(registry.slots, t.id)
	registry.Unlock()
	t.registered = false
	log.Debugw("removed exception slot", "thread", t.name)
}

// Throw starts propagating v. It does not return.
func (t *Thread) Throw(v any) {
	t.throw(v, 1)
}

func (t *Thread) throw(v any, skip int) {
	if v == nil {
		t.terminate(ErrNilPayload)
	}
	t.register()
	site := failure.NamedWithStackTraceSkip(fmt.Sprintf("%T", v), skip)
	panic(&unwinding{thread: t, obj: newObject(v, site)})
}

// Try runs body. If an exception thrown on t escapes body, the first handler
// accepting it runs; otherwise the exception keeps propagating. Panics that
// are not exceptions of t pass through untouched.
func (t *Thread) Try(body func(), handlers ...Handler) {
	u := t.run(body)
	if u == nil {
		return
	}
	for _, h := range handlers {
		if call, ok := h.bind(u.obj); ok {
			t.handle(u.obj, call)
			return
		}
	}
	panic(u)
}

func (t *Thread) run(body func()) (u *unwinding) {
	defer func() {
		if r := recover(); r != nil {
			uw, ok := r.(*unwinding)
			if !ok || uw.thread != t {
				panic(r)
			}
			u = uw
		}
	}()
	body()
	return nil
}

// handle runs a handler region. The region takes over the propagation's
// reference and drops it when the region ends, however it ends.
func (t *Thread) handle(o *object, call func()) {
	t.handling = append(t.handling, o)
	defer t.leave()
	call()
}

func (t *Thread) leave() {
	n := len(t.handling) - 1
	o := t.handling[n]
	t.handling[n] = nil
	t.handling = t.handling[:n]
	o.release()
}

func (t *Thread) active() *object {
	if len(t.handling) == 0 {
		return nil
	}
	return t.handling[len(t.handling)-1]
}

// Depth is the number of handler regions currently open on t.
func (t *Thread) Depth() int {
	return len(t.handling)
}

// Rethrow continues propagating the active exception without copying it.
// Called outside a handler it terminates the thread with
// ErrNoActiveException.
func (t *Thread) Rethrow() {
	o := t.active()
	if o == nil {
		t.terminate(ErrNoActiveException)
	}
	o.retain()
	panic(&unwinding{thread: t, obj: o})
}

// Current captures the active exception, or returns nil if there is none.
func (t *Thread) Current() *Ptr {
	o := t.active()
	if o == nil {
		return nil
	}
	return newPtr(o)
}

// RethrowPtr propagates the payload p refers to. No exception needs to be
// active and p stays valid.
func (t *Thread) RethrowPtr(p *Ptr) {
	if p.IsNil() {
		t.terminate(ErrNilPtr)
	}
	t.register()
	p.o.retain()
	panic(&unwinding{thread: t, obj: p.o})
}

func (t *Thread) terminate(reason error) {
	log.Errorw("terminating thread of control", "thread", t.name, "reason", reason)
	if t.onTerminate != nil {
		t.onTerminate(reason)
	}
	panic(&Terminated{Thread: t.id, Reason: reason})
}
