package result

// Result is either a success value or a failure value, never both.
type Result[O any, X any] interface {
	Ok() O
	Error() X
	isOk() bool
}

type result[O any, X any] struct {
	ok     O
	err    X
	isOkay bool
}

func (r result[O, X]) Ok() O {
	return r.ok
}

func (r result[O, X]) Error() X {
	return r.err
}

func (r result[O, X]) isOk() bool {
	return r.isOkay
}

// Ok wraps a success value.
func Ok[O, X any](value O) Result[O, X] {
	return result[O, X]{ok: value, isOkay: true}
}

// Error wraps a failure value.
func Error[O, X any](value X) Result[O, X] {
	return result[O, X]{err: value}
}

// IsOk reports whether r holds a success value.
func IsOk[O, X any](r Result[O, X]) bool {
	return r.isOk()
}

// MatchResultR0 calls onOk or onError depending on the variant.
func MatchResultR0[O, X any](r Result[O, X], onOk func(O), onError func(X)) {
	if r.isOk() {
		onOk(r.Ok())
		return
	}
	onError(r.Error())
}

// MatchResultR1 is MatchResultR0 for handlers returning one value.
func MatchResultR1[O, X, R1 any](r Result[O, X], onOk func(O) R1, onError func(X) R1) R1 {
	if r.isOk() {
		return onOk(r.Ok())
	}
	return onError(r.Error())
}

// MatchResultR2 is MatchResultR0 for handlers returning two values.
func MatchResultR2[O, X, R1, R2 any](r Result[O, X], onOk func(O) (R1, R2), onError func(X) (R1, R2)) (R1, R2) {
	if r.isOk() {
		return onOk(r.Ok())
	}
	return onError(r.Error())
}

// MapOk transforms the success value, passing failures through.
func MapOk[O, O2, X any](r Result[O, X], fn func(O) O2) Result[O2, X] {
	if r.isOk() {
		return Ok[O2, X](fn(r.Ok()))
	}
	return Error[O2](r.Error())
}

// MapError transforms the failure value, passing successes through.
func MapError[O, X, X2 any](r Result[O, X], fn func(X) X2) Result[O, X2] {
	if r.isOk() {
		return Ok[O, X2](r.Ok())
	}
	return Error[O](fn(r.Error()))
}

// MapResultR0 transforms whichever value is present.
func MapResultR0[O, O2, X, X2 any](r Result[O, X], mapOk func(O) O2, mapErr func(X) X2) Result[O2, X2] {
	if r.isOk() {
		return Ok[O2, X2](mapOk(r.Ok()))
	}
	return Error[O2](mapErr(r.Error()))
}

// AndThen chains a computation onto a success value.
func AndThen[O, O2, X any](r Result[O, X], fn func(O) Result[O2, X]) Result[O2, X] {
	if r.isOk() {
		return fn(r.Ok())
	}
	return Error[O2](r.Error())
}

// OrElse recovers from a failure value.
func OrElse[O, X, X2 any](r Result[O, X], fn func(X) Result[O, X2]) Result[O, X2] {
	if r.isOk() {
		return Ok[O, X2](r.Ok())
	}
	return fn(r.Error())
}

// Wrap converts a conventional (value, error) call into a Result.
func Wrap[O any](fn func() (O, error)) Result[O, error] {
	o, err := fn()
	if err != nil {
		return Error[O](err)
	}
	return Ok[O, error](o)
}

// Unwrap converts a Result with an error failure back into (value, error).
func Unwrap[O any, X error](r Result[O, X]) (O, error) {
	if r.isOk() {
		return r.Ok(), nil
	}
	var zero O
	return zero, r.Error()
}
