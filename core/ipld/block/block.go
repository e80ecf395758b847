package block

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/ipld/go-ipld-prime"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
	"github.com/kstd-project/go-kstd/core/ipld/codec"
	"github.com/kstd-project/go-kstd/core/ipld/hash"
)

type Block interface {
	Link() ipld.Link
	Bytes() []byte
}

type block struct {
	link  ipld.Link
	bytes []byte
}

func (b *block) Link() ipld.Link {
	return b.link
}

func (b *block) Bytes() []byte {
	return b.bytes
}

func NewBlock(link ipld.Link, bytes []byte) Block {
	return &block{link, bytes}
}

// Link hashes bytes with hasher and builds a CIDv1 link with the codec code.
func Link(codecCode uint64, bytes []byte, hasher hash.Hasher) (ipld.Link, error) {
	digest, err := hasher.Sum(bytes)
	if err != nil {
		return nil, fmt.Errorf("hashing block: %w", err)
	}
	return cidlink.Link{Cid: cid.NewCidV1(codecCode, digest.Bytes())}, nil
}

// Encode serialises value according to typ and wraps the bytes in a block
// addressed by hasher.
func Encode(value any, typ schema.Type, enc codec.Encoder, hasher hash.Hasher, opts ...bindnode.Option) (Block, error) {
	b, err := enc.Encode(value, typ, opts...)
	if err != nil {
		return nil, fmt.Errorf("encoding block: %w", err)
	}
	lnk, err := Link(enc.Code(), b, hasher)
	if err != nil {
		return nil, err
	}
	return NewBlock(lnk, b), nil
}

// Decode checks that the block bytes hash to its link and binds them to bind.
func Decode(blk Block, bind any, typ schema.Type, dec codec.Decoder, hasher hash.Hasher, opts ...bindnode.Option) error {
	lnk, err := Link(dec.Code(), blk.Bytes(), hasher)
	if err != nil {
		return err
	}
	if lnk.Binary() != blk.Link().Binary() {
		return fmt.Errorf("block integrity mismatch: link %s, data hashes to %s", blk.Link(), lnk)
	}
	if err := dec.Decode(blk.Bytes(), bind, typ, opts...); err != nil {
		return fmt.Errorf("decoding block: %w", err)
	}
	return nil
}
