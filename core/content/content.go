// Package content identifies octet buffers by their digest. Buffers become
// raw-codec blocks addressed by a CIDv1 whose multihash is, unless configured
// otherwise, sha1 computed by the package's own digest engine.
package content

import (
	"fmt"

	"github.com/ipfs/go-cid"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/ipld/block"
	"github.com/kstd-project/go-kstd/core/ipld/hash"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha1"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha256"
	"github.com/multiformats/go-multicodec"
	"github.com/multiformats/go-multihash"
)

// RawCode is the codec of content blocks: the bytes are the content.
const RawCode = uint64(multicodec.Raw)

// Option is an option configuring content identification.
type Option func(cfg *config) error

type config struct {
	hasher hash.Hasher
}

// WithHasher configures the hasher used to address content. The default is
// sha1.
func WithHasher(hasher hash.Hasher) Option {
	return func(cfg *config) error {
		if hasher == nil {
			return fmt.Errorf("hasher must not be nil")
		}
		cfg.hasher = hasher
		return nil
	}
}

func newConfig(options []Option) (config, error) {
	cfg := config{hasher: sha1.Hasher}
	for _, opt := range options {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// NewBlock addresses data as a raw block.
func NewBlock(data []byte, options ...Option) (ipld.Block, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}
	lnk, err := block.Link(RawCode, data, cfg.hasher)
	if err != nil {
		return nil, err
	}
	return block.NewBlock(lnk, data), nil
}

// Identify returns the content identifier of data.
func Identify(data []byte, options ...Option) (cid.Cid, error) {
	blk, err := NewBlock(data, options...)
	if err != nil {
		return cid.Undef, err
	}
	return ToCid(blk.Link())
}

// ToCid extracts the CID behind a link.
func ToCid(link ipld.Link) (cid.Cid, error) {
	if cl, ok := link.(cidlink.Link); ok {
		return cl.Cid, nil
	}
	c, err := cid.Parse(link.String())
	if err != nil {
		return cid.Undef, fmt.Errorf("parsing link %s: %w", link, err)
	}
	return c, nil
}

// HasherFor returns the hasher for a multihash function code.
func HasherFor(code uint64) (hash.Hasher, bool) {
	switch code {
	case sha1.Code:
		return sha1.Hasher, true
	case sha256.Code:
		return sha256.Hasher, true
	}
	return nil, false
}

// IntegrityError reports a block whose bytes do not hash to its link.
type IntegrityError struct {
	Link ipld.Link
	Want []byte
	Got  []byte
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("content integrity mismatch for %s: expected digest %x, got %x", e.Link, e.Want, e.Got)
}

func (e *IntegrityError) Name() string {
	return "ContentIntegrityMismatch"
}

// Verify rehashes the block bytes with the hash function named by its link
// and compares the result with the digest the link carries.
func Verify(blk ipld.Block) error {
	c, err := ToCid(blk.Link())
	if err != nil {
		return err
	}
	want, err := hash.Decode(c.Hash())
	if err != nil {
		return fmt.Errorf("decoding multihash of %s: %w", c, err)
	}

	if hasher, ok := HasherFor(want.Code()); ok {
		got, err := hasher.Sum(blk.Bytes())
		if err != nil {
			return fmt.Errorf("hashing %s: %w", c, err)
		}
		if !hash.Equal(want, got) {
			return &IntegrityError{Link: blk.Link(), Want: want.Digest(), Got: got.Digest()}
		}
		return nil
	}

	mh, err := multihash.Sum(blk.Bytes(), want.Code(), int(want.Size()))
	if err != nil {
		return fmt.Errorf("hashing %s: %w", c, err)
	}
	got, err := hash.Decode(mh)
	if err != nil {
		return err
	}
	if !hash.Equal(want, got) {
		return &IntegrityError{Link: blk.Link(), Want: want.Digest(), Got: got.Digest()}
	}
	return nil
}
