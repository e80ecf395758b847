package content

import (
	"fmt"
	"strings"

	"github.com/ipfs/go-cid"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/multiformats/go-base32"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// DefaultBase is the multibase content identifiers are printed in.
const DefaultBase = multibase.Base32

// ParseBase resolves a multibase name such as "base32" or "base58btc".
func ParseBase(name string) (multibase.Encoding, error) {
	enc, ok := multibase.Encodings[name]
	if !ok {
		return 0, fmt.Errorf("unknown multibase: %q", name)
	}
	return enc, nil
}

// Format renders c in the given multibase.
func Format(c cid.Cid, base multibase.Encoding) (string, error) {
	s, err := c.StringOfBase(base)
	if err != nil {
		return "", fmt.Errorf("formatting %s: %w", c, err)
	}
	return s, nil
}

// DatastoreKey derives the key a block is stored under in a flat datastore:
// the unpadded base32 encoding of its multihash. Blocks with the same content
// share a key regardless of codec.
func DatastoreKey(link ipld.Link) (string, error) {
	c, err := ToCid(link)
	if err != nil {
		return "", err
	}
	return "/" + base32.RawStdEncoding.EncodeToString(c.Hash()), nil
}

// ParseDatastoreKey recovers the raw content identifier from a key produced
// by DatastoreKey.
func ParseDatastoreKey(key string) (cid.Cid, error) {
	b, err := base32.RawStdEncoding.DecodeString(strings.TrimPrefix(key, "/"))
	if err != nil {
		return cid.Undef, fmt.Errorf("decoding datastore key %q: %w", key, err)
	}
	mh, err := multihash.Cast(b)
	if err != nil {
		return cid.Undef, fmt.Errorf("datastore key %q is not a multihash: %w", key, err)
	}
	return cid.NewCidV1(RawCode, mh), nil
}
