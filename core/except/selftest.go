package except

import (
	"fmt"
	"reflect"
)

// ScenarioError names the lifetime scenario that did not behave.
type ScenarioError struct {
	Scenario string
	Detail   string
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("exception self test %q: %s", e.Scenario, e.Detail)
}

func (e *ScenarioError) Name() string {
	return "ExceptionScenarioFailed"
}

type sampleCounts struct {
	copies   int
	destroys int
}

type sample struct {
	value  int
	counts *sampleCounts
}

func (p sample) Clone() sample {
	p.counts.copies++
	return p
}

func (p sample) Destroy() {
	p.counts.destroys++
}

type sampleKind interface {
	kind() string
}

type derivedSample struct{ sample }

func (derivedSample) kind() string { return "derived" }

func (d derivedSample) Clone() derivedSample {
	d.counts.copies++
	return d
}

type scenario struct {
	name string
	run  func(t *Thread) string
}

var scenarios = []scenario{
	{"capture-extends-lifetime", func(t *Thread) string {
		c := &sampleCounts{}
		var held *Ptr
		t.Try(func() { t.Throw(sample{1, c}) }, CatchAll(func() { held = t.Current() }))
		if c.destroys != 0 {
			return "payload destroyed while captured"
		}
		held.Release()
		if c.destroys != 1 {
			return fmt.Sprintf("payload destroyed %d times after release", c.destroys)
		}
		return ""
	}},
	{"copy-independence", func(t *Thread) string {
		c := &sampleCounts{}
		detail := ""
		t.Try(func() { t.Throw(sample{1, c}) }, Catch(func(p sample) {
			p.value = 99
			cur := t.Current()
			defer cur.Release()
			if cur.Value().(sample).value != 1 {
				detail = "mutating the caught copy changed the payload"
			}
		}))
		if detail == "" && (c.copies != 1 || c.destroys != 1) {
			detail = fmt.Sprintf("copies=%d destroys=%d", c.copies, c.destroys)
		}
		return detail
	}},
	{"rethrow-identity", func(t *Thread) string {
		c := &sampleCounts{}
		var inner, outer *Ptr
		detail := ""
		t.Try(func() {
			t.Try(func() { t.Throw(derivedSample{sample{7, c}}) }, CatchAs(func(sampleKind) {
				inner = t.Current()
				t.Rethrow()
			}))
		}, CatchAs(func(k sampleKind) {
			outer = t.Current()
			if outer.Type() != reflect.TypeFor[derivedSample]() || k.kind() != "derived" {
				detail = "rethrow lost the dynamic type"
			}
		}))
		if detail == "" && !inner.Same(outer) {
			detail = "rethrow produced a different payload"
		}
		inner.Release()
		outer.Release()
		if detail == "" && (c.copies != 0 || c.destroys != 1) {
			detail = fmt.Sprintf("copies=%d destroys=%d", c.copies, c.destroys)
		}
		return detail
	}},
	{"nested-absent", func(t *Thread) string {
		detail := "wrapper not caught"
		t.Try(func() { t.ThrowWithNested(sample{1, &sampleCounts{}}) }, Catch(func(ne NestedException) {
			detail = ""
			if ne.NestedPtr() != nil {
				detail = "nested pointer is not null"
			}
		}))
		return detail
	}},
	{"nested-present", func(t *Thread) string {
		detail := "cause not reproduced"
		t.Try(func() {
			t.Try(func() { t.Throw(derivedSample{sample{1, &sampleCounts{}}}) }, CatchAll(func() {
				t.ThrowWithNested(sample{2, &sampleCounts{}})
			}))
		}, Catch(func(ne NestedException) {
			if ne.NestedPtr() == nil {
				detail = "nested pointer is null"
				return
			}
			t.Try(func() { ne.RethrowNested(t) }, Catch(func(k sampleKind) {
				if _, ok := k.(derivedSample); ok {
					detail = ""
				}
			}))
		}))
		return detail
	}},
}

// SelfTest runs the lifetime scenarios on a private thread of control and
// returns the first one that fails.
func SelfTest() (err error) {
	runErr := Run(func(t *Thread) {
		for _, s := range scenarios {
			if detail := s.run(t); detail != "" {
				err = &ScenarioError{Scenario: s.name, Detail: detail}
				return
			}
		}
	}, WithName("selftest"))
	if runErr != nil {
		return runErr
	}
	return err
}
