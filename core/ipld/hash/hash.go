// Package hash defines multihash producing hashers.
package hash

import (
	"bytes"
	"fmt"

	"github.com/multiformats/go-varint"
)

type Hasher interface {
	Code() uint64
	Size() uint64
	Sum(bytes []byte) (Digest, error)
}

// Digest is a multihash: the hash function code, the digest size and the raw
// digest, plus the self-describing encoding of all three.
type Digest interface {
	Code() uint64
	Size() uint64
	Digest() []byte
	Bytes() []byte
}

type digest struct {
	code   uint64
	size   uint64
	digest []byte
	bytes  []byte
}

func (d *digest) Bytes() []byte {
	return d.bytes
}

func (d *digest) Code() uint64 {
	return d.code
}

func (d *digest) Digest() []byte {
	return d.digest
}

func (d *digest) Size() uint64 {
	return d.size
}

func NewDigest(code uint64, size uint64, digst []byte, bytes []byte) Digest {
	return &digest{code, size, digst, bytes}
}

// Decode parses multihash bytes.
func Decode(b []byte) (Digest, error) {
	r := bytes.NewReader(b)
	code, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading multihash code: %w", err)
	}
	size, err := varint.ReadUvarint(r)
	if err != nil {
		return nil, fmt.Errorf("reading multihash size: %w", err)
	}
	if uint64(r.Len()) != size {
		return nil, fmt.Errorf("multihash size mismatch: header says %d, found %d", size, r.Len())
	}
	digst := b[len(b)-int(size):]
	return NewDigest(code, size, digst, b), nil
}

// Equal reports whether two digests encode the same multihash.
func Equal(a, b Digest) bool {
	return bytes.Equal(a.Bytes(), b.Bytes())
}
