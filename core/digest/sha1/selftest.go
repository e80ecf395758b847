package sha1

import (
	"bytes"
	"fmt"
)

// VectorError reports the known-answer vector that did not reproduce.
type VectorError struct {
	Vector string
	Want   string
	Got    string
}

func (v *VectorError) Error() string {
	return fmt.Sprintf("sha1 self test %q: expected %s, got %s", v.Vector, v.Want, v.Got)
}

func (v *VectorError) Name() string {
	return "DigestVectorMismatch"
}

type vector struct {
	name   string
	input  func() []byte
	digest string
}

var vectors = []vector{
	{
		name:   "empty",
		input:  func() []byte { return nil },
		digest: "da39a3ee5e6b4b0d3255bfef95601890afd80709",
	},
	{
		name:   "abc",
		input:  func() []byte { return []byte("abc") },
		digest: "a9993e364706816aba3e25717850c26c9cd0d89d",
	},
	{
		name:   "448-bit",
		input:  func() []byte { return []byte("abcdbcdecdefdefgefghfghighijhijkijkljklmklmnlmnomnopnopq") },
		digest: "84983e441c3bd26ebaae4aa1f95129e5e54670f1",
	},
	{
		name:   "million-a",
		input:  func() []byte { return bytes.Repeat([]byte{'a'}, 1000000) },
		digest: "34aa973cd4c4daa4f61eeb2bdbad27316534016f",
	},
}

// SelfTest runs the known-answer vectors, once in a single call and once fed
// in uneven pieces. It returns nil when every vector reproduces.
func SelfTest() error {
	e := New()
	for _, v := range vectors {
		in := v.input()

		e.Reset()
		if got := e.Consume(in).String(); got != v.digest {
			return &VectorError{Vector: v.name, Want: v.digest, Got: got}
		}

		e.Reset()
		for chunk := 1; len(in) > 0; chunk = chunk*3 + 1 {
			n := min(chunk, len(in))
			e.Write(in[:n])
			in = in[n:]
		}
		if got := e.Finalize().String(); got != v.digest {
			return &VectorError{Vector: v.name + "/streamed", Want: v.digest, Got: got}
		}
	}
	return nil
}
