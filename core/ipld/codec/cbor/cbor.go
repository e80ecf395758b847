// Package cbor binds Go values to IPLD schema types and serialises them as
// dag-cbor.
package cbor

import (
	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagcbor"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
	"github.com/kstd-project/go-kstd/core/ipld/codec"
	"github.com/multiformats/go-multicodec"
)

const Code = uint64(multicodec.DagCbor)

type cbor struct{}

func (cbor) Code() uint64 {
	return Code
}

func (cbor) Encode(val any, typ schema.Type, opts ...bindnode.Option) ([]byte, error) {
	return Encode(val, typ, opts...)
}

func (cbor) Decode(b []byte, bind any, typ schema.Type, opts ...bindnode.Option) error {
	return Decode(b, bind, typ, opts...)
}

var Codec codec.Codec = cbor{}

func Encode(val any, typ schema.Type, opts ...bindnode.Option) ([]byte, error) {
	return ipld.Marshal(dagcbor.Encode, val, typ, opts...)
}

func Decode(b []byte, bind any, typ schema.Type, opts ...bindnode.Option) error {
	_, err := ipld.Unmarshal(b, dagcbor.Decode, bind, typ, opts...)
	return err
}
