// Package sha1 is an incremental SHA-1 digest engine.
//
// An [Engine] accumulates input in 64 byte blocks, runs the compression
// function once per complete block and buffers the tail until either more
// input arrives or [Engine.Finalize] pads it. Finalizing does not disturb
// the running state, so an engine can keep accepting input afterwards or be
// [Engine.Reset] and reused.
//
// SHA-1 is not collision resistant against a determined attacker. It is
// provided for content identification and interoperability.
package sha1

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"hash"
)

// Size of a SHA-1 digest in bytes.
const Size = 20

// BlockSize is the size of a compression block in bytes.
const BlockSize = 64

const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

// Digest is the 160-bit output of the engine. It is a plain value: two
// digests are equal when their bytes are equal.
type Digest [Size]byte

// String returns the 40 character lowercase hex encoding of the digest.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Bytes returns a copy of the digest bytes.
func (d Digest) Bytes() []byte {
	b := make([]byte, Size)
	copy(b, d[:])
	return b
}

// ParseDigest decodes a 40 character hex string.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("decoding digest: %w", err)
	}
	if len(b) != Size {
		return d, fmt.Errorf("invalid digest length: %d", len(b))
	}
	copy(d[:], b)
	return d, nil
}

// Engine is a running SHA-1 computation. The zero value is not ready for
// use; call [New] or [Engine.Reset] first. An Engine must not be driven by
// more than one goroutine at a time.
type Engine struct {
	h   [5]uint32
	x   [BlockSize]byte
	nx  int
	len uint64
}

var _ hash.Hash = (*Engine)(nil)

// New returns an engine in the reset state.
func New() *Engine {
	e := new(Engine)
	e.Reset()
	return e
}

// Reset restores the initial chaining value and discards buffered input.
func (e *Engine) Reset() {
	e.h[0] = init0
	e.h[1] = init1
	e.h[2] = init2
	e.h[3] = init3
	e.h[4] = init4
	e.nx = 0
	e.len = 0
}

func (e *Engine) Size() int { return Size }

func (e *Engine) BlockSize() int { return BlockSize }

// Len returns the number of bytes consumed since the last reset.
func (e *Engine) Len() uint64 { return e.len }

// Write consumes p. Complete blocks are compressed immediately, the rest is
// buffered. It never returns an error.
func (e *Engine) Write(p []byte) (int, error) {
	n := len(p)
	e.len += uint64(n)
	if e.nx > 0 {
		c := copy(e.x[e.nx:], p)
		e.nx += c
		if e.nx == BlockSize {
			compress(&e.h, e.x[:])
			e.nx = 0
		}
		p = p[c:]
	}
	if len(p) >= BlockSize {
		c := len(p) &^ (BlockSize - 1)
		compress(&e.h, p[:c])
		p = p[c:]
	}
	if len(p) > 0 {
		e.nx = copy(e.x[:], p)
	}
	return n, nil
}

// Consume writes message and returns the digest of everything consumed since
// the last reset. On a freshly reset engine this is the digest of message.
func (e *Engine) Consume(message []byte) Digest {
	e.Write(message)
	return e.Finalize()
}

// Finalize pads the buffered tail and returns the digest. The engine's own
// running state is left untouched.
func (e *Engine) Finalize() Digest {
	h := e.h
	var scratch [2 * BlockSize]byte
	n := copy(scratch[:], e.x[:e.nx])
	scratch[n] = 0x80

	// The length suffix must fit after the marker in the same block,
	// otherwise a second block carries it.
	end := BlockSize
	if n+1 > BlockSize-8 {
		end = 2 * BlockSize
	}
	binary.BigEndian.PutUint64(scratch[end-8:end], e.len<<3)
	compress(&h, scratch[:end])

	var d Digest
	for i, v := range h {
		binary.BigEndian.PutUint32(d[i*4:], v)
	}
	return d
}

// Sum appends the current digest to b.
func (e *Engine) Sum(b []byte) []byte {
	d := e.Finalize()
	return append(b, d[:]...)
}

// Sum returns the digest of data.
func Sum(data []byte) Digest {
	return New().Consume(data)
}
