package except

import (
	"testing"

	edm "github.com/kstd-project/go-kstd/core/except/datamodel"
	"github.com/kstd-project/go-kstd/core/ipld/codec/cbor"
	"github.com/kstd-project/go-kstd/core/ipld/codec/json"
	"github.com/kstd-project/go-kstd/core/result"
	"github.com/kstd-project/go-kstd/core/result/failure"
	"github.com/kstd-project/go-kstd/core/result/ok"
	"github.com/stretchr/testify/require"
)

func TestCatching(t *testing.T) {
	run(t, func(th *Thread) {
		r := Catching(th, func() int { return 7 })
		require.True(t, result.IsOk(r))
		require.Equal(t, 7, r.Ok())

		r = Catching(th, func() int {
			th.Throw(rangeError{9})
			return 0
		})
		require.False(t, result.IsOk(r))
		require.Equal(t, "except.rangeError", r.Error().Name())
		require.Equal(t, "index 9 out of range", r.Error().Error())
	})
}

func TestDo(t *testing.T) {
	c := &counts{}
	run(t, func(th *Thread) {
		r := Do(th, func() {})
		require.Equal(t, result.Ok[ok.Unit, failure.IPLDBuilderFailure](ok.Unit{}), r)

		r = Do(th, func() { th.Throw(tracked{1, c}) })
		require.False(t, result.IsOk(r))
	})
	// the failure holds no reference to the payload
	require.Equal(t, int64(1), c.destroys.Load())
}

//go:noinline
func throwHere(th *Thread) {
	th.Throw(rangeError{1})
}

func TestPtrFailure(t *testing.T) {
	var held *Ptr
	run(t, func(th *Thread) {
		th.Try(func() {
			th.Try(func() { throwHere(th) }, CatchAll(func() {
				th.ThrowWithNested("lookup failed")
			}))
		}, CatchAll(func() { held = th.Current() }))
	})
	defer held.Release()

	f := held.Failure()
	require.Equal(t, "string", f.Name())
	require.Equal(t, "lookup failed", f.Error())

	ef, isExceptionFailure := f.(ExceptionFailure)
	require.True(t, isExceptionFailure)
	require.Contains(t, ef.Stack(), "TestPtrFailure")
	require.Len(t, ef.Nested(), 1)
	require.Equal(t, "except.rangeError", *ef.Nested()[0].Name)
	require.Equal(t, "index 1 out of range", ef.Nested()[0].Message)
	require.Contains(t, *ef.Nested()[0].Stack, "throwHere")

	t.Run("encodes", func(t *testing.T) {
		nd, err := f.ToIPLD()
		require.NoError(t, err)
		name, err := nd.LookupByString("name")
		require.NoError(t, err)
		s, err := name.AsString()
		require.NoError(t, err)
		require.Equal(t, "string", s)

		mdl := ef.Model()
		b, err := cbor.Encode(&mdl, edm.ExceptionType())
		require.NoError(t, err)
		var decoded edm.ExceptionModel
		require.NoError(t, cbor.Decode(b, &decoded, edm.ExceptionType()))
		require.Equal(t, mdl, decoded)

		b, err = json.Encode(&mdl, edm.ExceptionType())
		require.NoError(t, err)
		require.Contains(t, string(b), "lookup failed")
	})
}

func TestFailureFromIPLD(t *testing.T) {
	var held *Ptr
	run(t, func(th *Thread) {
		th.Try(func() {
			th.Try(func() { throwHere(th) }, CatchAll(func() {
				th.ThrowWithNested(rangeError{2})
			}))
		}, CatchAll(func() { held = th.Current() }))
	})
	defer held.Release()

	ef := held.Failure().(ExceptionFailure)
	nd, err := ef.ToIPLD()
	require.NoError(t, err)
	require.Equal(t, ef.Model(), FailureFromIPLD(nd).Model())

	t.Run("generic failure", func(t *testing.T) {
		nd, err := failure.New("Boom", "it broke").ToIPLD()
		require.NoError(t, err)
		f := FailureFromIPLD(nd)
		require.Equal(t, "Boom", f.Name())
		require.Equal(t, "it broke", f.Error())
		require.Empty(t, f.Nested())
	})
}

func TestUsageErrorIsNamed(t *testing.T) {
	f := failure.FromError(ErrNoActiveException)
	require.Equal(t, "UsageError", f.Name())
	require.Equal(t, "rethrow with no active exception", f.Error())
}
