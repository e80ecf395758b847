package sha1

import (
	"github.com/kstd-project/go-kstd/core/digest/sha1"
	"github.com/kstd-project/go-kstd/core/ipld/hash"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// sha1
const Code = uint64(multicodec.Sha1)

// sha1 hash has a 20-byte sum
const Size = sha1.Size

type hasher struct{}

func (hasher) Code() uint64 {
	return Code
}

func (hasher) Size() uint64 {
	return Size
}

func (hasher) Sum(b []byte) (hash.Digest, error) {
	sum := sha1.Sum(b)
	return FromDigest(sum)
}

// FromDigest wraps an engine digest as a multihash.
func FromDigest(sum sha1.Digest) (hash.Digest, error) {
	d, err := multihash.Encode(sum[:], Code)
	if err != nil {
		return nil, err
	}
	return hash.NewDigest(Code, Size, sum.Bytes(), d), nil
}

var Hasher hash.Hasher = hasher{}
