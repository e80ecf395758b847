package content

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"
	"testing"

	"github.com/ipfs/go-cid"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/kstd-project/go-kstd/core/dag/blockstore"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/ipld/block"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha256"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

func prefixSum(t *testing.T, mhType uint64, data []byte) cid.Cid {
	t.Helper()
	c, err := cid.Prefix{Version: 1, Codec: RawCode, MhType: mhType, MhLength: -1}.Sum(data)
	require.NoError(t, err)
	return c
}

func TestIdentify(t *testing.T) {
	data := []byte("abc")

	t.Run("sha1 by default", func(t *testing.T) {
		c, err := Identify(data)
		require.NoError(t, err)
		require.True(t, prefixSum(t, multihash.SHA1, data).Equals(c))

		dmh, err := multihash.Decode(c.Hash())
		require.NoError(t, err)
		require.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", hex.EncodeToString(dmh.Digest))
	})

	t.Run("configured hasher", func(t *testing.T) {
		c, err := Identify(data, WithHasher(sha256.Hasher))
		require.NoError(t, err)
		require.True(t, prefixSum(t, multihash.SHA2_256, data).Equals(c))
	})

	t.Run("nil hasher", func(t *testing.T) {
		_, err := Identify(data, WithHasher(nil))
		require.Error(t, err)
	})

	t.Run("empty content", func(t *testing.T) {
		c, err := Identify(nil)
		require.NoError(t, err)
		require.True(t, prefixSum(t, multihash.SHA1, nil).Equals(c))
	})
}

func TestVerify(t *testing.T) {
	blk, err := NewBlock([]byte("hello world"))
	require.NoError(t, err)
	require.NoError(t, Verify(blk))

	t.Run("tampered", func(t *testing.T) {
		forged := block.NewBlock(blk.Link(), []byte("hello w0rld"))
		err := Verify(forged)
		var ie *IntegrityError
		require.ErrorAs(t, err, &ie)
		require.Equal(t, "ContentIntegrityMismatch", ie.Name())
		require.Len(t, ie.Want, 20)
	})

	t.Run("sha2-256", func(t *testing.T) {
		blk, err := NewBlock([]byte("hello world"), WithHasher(sha256.Hasher))
		require.NoError(t, err)
		require.NoError(t, Verify(blk))
	})

	t.Run("other hash functions", func(t *testing.T) {
		data := []byte("hello world")
		c, err := cid.Prefix{Version: 1, Codec: RawCode, MhType: multihash.SHA2_512, MhLength: -1}.Sum(data)
		require.NoError(t, err)
		require.NoError(t, Verify(block.NewBlock(cidlink.Link{Cid: c}, data)))
		require.Error(t, Verify(block.NewBlock(cidlink.Link{Cid: c}, []byte("other"))))
	})
}

func TestFormat(t *testing.T) {
	c, err := Identify([]byte("abc"))
	require.NoError(t, err)

	s, err := Format(c, DefaultBase)
	require.NoError(t, err)
	require.Equal(t, c.String(), s)
	require.True(t, strings.HasPrefix(s, "b"))

	base, err := ParseBase("base58btc")
	require.NoError(t, err)
	require.Equal(t, multibase.Encoding(multibase.Base58BTC), base)
	s, err = Format(c, base)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(s, "z"))

	parsed, err := cid.Decode(s)
	require.NoError(t, err)
	require.True(t, parsed.Equals(c))

	_, err = ParseBase("base65536")
	require.Error(t, err)
}

func TestDatastoreKey(t *testing.T) {
	blk, err := NewBlock([]byte("abc"))
	require.NoError(t, err)

	key, err := DatastoreKey(blk.Link())
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(key, "/"))
	require.Equal(t, strings.ToUpper(key), key)
	require.NotContains(t, key, "=")

	c, err := ParseDatastoreKey(key)
	require.NoError(t, err)
	require.Equal(t, blk.Link().String(), c.String())

	_, err = ParseDatastoreKey("/not-base32!")
	require.Error(t, err)
}

func TestBundle(t *testing.T) {
	files := []File{
		{Name: "a.txt", Data: []byte("apples")},
		{Name: "b.txt", Data: []byte("oranges")},
		{Name: "copy-of-a.txt", Data: []byte("apples")},
		{Name: "empty", Data: nil},
	}
	bundle, err := Pack(files)
	require.NoError(t, err)
	require.Len(t, bundle.Entries(), 4)
	require.Equal(t, bundle.Entries()[0].Content, bundle.Entries()[2].Content)

	archive, err := io.ReadAll(bundle.Archive())
	require.NoError(t, err)

	extracted, err := Extract(bytes.NewReader(archive))
	require.NoError(t, err)
	require.Equal(t, bundle.Root().Link().String(), extracted.Root().Link().String())
	for _, f := range files {
		data, ok, err := extracted.Get(f.Name)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, len(f.Data), len(data))
		require.True(t, bytes.Equal(f.Data, data))
	}
	_, ok, err := extracted.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	t.Run("root first, shared blocks once", func(t *testing.T) {
		bs, err := blockstore.NewBlockStore()
		require.NoError(t, err)
		require.NoError(t, blockstore.WriteInto(bundle, bs))
		var links []string
		for b, err := range bs.Iterator() {
			require.NoError(t, err)
			links = append(links, b.Link().String())
		}
		require.Len(t, links, 4)
		require.Equal(t, bundle.Root().Link().String(), links[0])
	})

	t.Run("missing entry block", func(t *testing.T) {
		br, err := blockstore.NewBlockReader(blockstore.WithBlocks([]ipld.Block{bundle.Root()}))
		require.NoError(t, err)
		_, err = OpenBundle(bundle.Root().Link(), br)
		require.ErrorContains(t, err, "missing block for a.txt")
	})

	t.Run("not a manifest", func(t *testing.T) {
		blk, err := NewBlock([]byte("apples"))
		require.NoError(t, err)
		br, err := blockstore.NewBlockReader(blockstore.WithBlocks([]ipld.Block{blk}))
		require.NoError(t, err)
		_, err = OpenBundle(blk.Link(), br)
		require.ErrorContains(t, err, "not dag-cbor")
	})

	t.Run("sha2-256 bundle", func(t *testing.T) {
		bundle, err := Pack(files, WithHasher(sha256.Hasher))
		require.NoError(t, err)
		archive, err := io.ReadAll(bundle.Archive())
		require.NoError(t, err)
		_, err = Extract(bytes.NewReader(archive))
		require.NoError(t, err)
	})
}
