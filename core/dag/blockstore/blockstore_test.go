package blockstore

import (
	"errors"
	"fmt"
	"iter"
	"sync"
	"testing"

	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/ipld/block"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha1"
	"github.com/kstd-project/go-kstd/core/iterable"
	"github.com/multiformats/go-multicodec"
	"github.com/stretchr/testify/require"
)

func newBlock(t *testing.T, data string) ipld.Block {
	t.Helper()
	lnk, err := block.Link(uint64(multicodec.Raw), []byte(data), sha1.Hasher)
	require.NoError(t, err)
	return block.NewBlock(lnk, []byte(data))
}

func collect(t *testing.T, seq iter.Seq2[ipld.Block, error]) []string {
	t.Helper()
	var out []string
	for b, err := range seq {
		require.NoError(t, err)
		out = append(out, string(b.Bytes()))
	}
	return out
}

type view struct {
	root   ipld.Block
	blocks []ipld.Block
}

func (v view) Root() ipld.Block                      { return v.root }
func (v view) Blocks() iterable.Iterator[ipld.Block] { return iterable.From(v.blocks) }

func TestBlockStore(t *testing.T) {
	a, b, c := newBlock(t, "a"), newBlock(t, "b"), newBlock(t, "c")

	t.Run("put get", func(t *testing.T) {
		bs, err := NewBlockStore()
		require.NoError(t, err)
		require.NoError(t, bs.Put(a))

		got, ok, err := bs.Get(a.Link())
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, a.Bytes(), got.Bytes())

		_, ok, err = bs.Get(b.Link())
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("insertion order without duplicates", func(t *testing.T) {
		bs, err := NewBlockStore(WithBlocks([]ipld.Block{b, a, b}))
		require.NoError(t, err)
		require.NoError(t, bs.Put(c))
		require.NoError(t, bs.Put(a))
		require.Equal(t, []string{"b", "a", "c"}, collect(t, bs.Iterator()))
	})

	t.Run("iterator is a snapshot", func(t *testing.T) {
		bs, err := NewBlockStore(WithBlocks([]ipld.Block{a}))
		require.NoError(t, err)
		seq := bs.Iterator()
		require.NoError(t, bs.Put(b))
		require.Equal(t, []string{"a"}, collect(t, seq))
	})

	t.Run("concurrent puts", func(t *testing.T) {
		bs, err := NewBlockStore()
		require.NoError(t, err)
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				require.NoError(t, bs.Put(newBlock(t, fmt.Sprintf("%d", i%10))))
			}()
		}
		wg.Wait()
		require.Len(t, collect(t, bs.Iterator()), 10)
	})

	t.Run("iterator error", func(t *testing.T) {
		someErr := errors.New("some error")
		_, err := NewBlockStore(WithBlocksIterator(func(yield func(ipld.Block, error) bool) {
			if yield(a, nil) {
				yield(nil, someErr)
			}
		}))
		require.ErrorIs(t, err, someErr)
	})
}

func TestBlockReader(t *testing.T) {
	a, b := newBlock(t, "a"), newBlock(t, "b")
	br, err := NewBlockReader(
		WithBlocksIterator(iterable.Seq2(iterable.From([]ipld.Block{a, b, a}))),
	)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, collect(t, br.Iterator()))

	_, ok, err := br.Get(b.Link())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWriteInto(t *testing.T) {
	a, b := newBlock(t, "a"), newBlock(t, "b")
	bs, err := NewBlockStore()
	require.NoError(t, err)
	require.NoError(t, WriteInto(view{root: a, blocks: []ipld.Block{a, b}}, bs))
	require.Equal(t, []string{"a", "b"}, collect(t, bs.Iterator()))
}

func TestMemoryBlockCache(t *testing.T) {
	t.Run("evicts least recently used", func(t *testing.T) {
		cache, err := NewMemoryBlockCache(2)
		require.NoError(t, err)
		a, b, c := newBlock(t, "a"), newBlock(t, "b"), newBlock(t, "c")

		require.NoError(t, cache.Put(a))
		require.NoError(t, cache.Put(b))
		_, ok, _ := cache.Get(a.Link())
		require.True(t, ok)
		require.NoError(t, cache.Put(c))

		_, ok, _ = cache.Get(b.Link())
		require.False(t, ok)
		require.Equal(t, 2, cache.Len())
		require.Equal(t, []string{"a", "c"}, collect(t, cache.Iterator()))
	})

	t.Run("default size", func(t *testing.T) {
		cache, err := NewMemoryBlockCache(-1)
		require.NoError(t, err)
		for i := range MemoryBlockCacheSize + 1 {
			require.NoError(t, cache.Put(newBlock(t, fmt.Sprintf("%d", i))))
		}
		require.Equal(t, MemoryBlockCacheSize, cache.Len())
	})

	t.Run("as write target", func(t *testing.T) {
		cache, err := NewMemoryBlockCache(0)
		require.NoError(t, err)
		a := newBlock(t, "a")
		require.NoError(t, WriteInto(view{root: a, blocks: []ipld.Block{a}}, cache))
		_, ok, err := cache.Get(a.Link())
		require.NoError(t, err)
		require.True(t, ok)
	})
}
