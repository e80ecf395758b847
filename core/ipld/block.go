package ipld

import "github.com/kstd-project/go-kstd/core/ipld/block"

// NewBlockUnsafe creates a block without checking that bytes hash to link.
func NewBlockUnsafe(link Link, bytes []byte) Block {
	return block.NewBlock(link, bytes)
}
