package blockstore

import (
	"fmt"
	"iter"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kstd-project/go-kstd/core/ipld"
)

var MemoryBlockCacheSize = 1024

// MemoryBlockCache is a BlockStore that keeps at most a fixed number of
// blocks, evicting the least recently used.
type MemoryBlockCache struct {
	data *lru.Cache[string, ipld.Block]
}

func (m *MemoryBlockCache) Get(link ipld.Link) (ipld.Block, bool, error) {
	b, ok := m.data.Get(link.String())
	return b, ok, nil
}

func (m *MemoryBlockCache) Put(block ipld.Block) error {
	m.data.Add(block.Link().String(), block)
	return nil
}

// Iterator yields the cached blocks from oldest to newest use.
func (m *MemoryBlockCache) Iterator() iter.Seq2[ipld.Block, error] {
	keys := m.data.Keys()
	return func(yield func(ipld.Block, error) bool) {
		for _, k := range keys {
			b, ok := m.data.Peek(k)
			if !ok {
				// evicted since the iterator was created
				continue
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// Len is the number of cached blocks.
func (m *MemoryBlockCache) Len() int {
	return m.data.Len()
}

var _ BlockStore = (*MemoryBlockCache)(nil)

// NewMemoryBlockCache creates a new in memory LRU cache for blocks. The size
// parameter controls the maximum number of blocks that can be cached. Pass a
// value less than 1 to use the default cache size [MemoryBlockCacheSize].
func NewMemoryBlockCache(size int) (*MemoryBlockCache, error) {
	if size <= 0 {
		size = MemoryBlockCacheSize
	}
	cache, err := lru.New[string, ipld.Block](size)
	if err != nil {
		return nil, fmt.Errorf("creating block LRU: %w", err)
	}
	return &MemoryBlockCache{data: cache}, nil
}
