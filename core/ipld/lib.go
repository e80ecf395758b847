package ipld

import (
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
	"github.com/kstd-project/go-kstd/core/ipld/block"
)

type Link = ipld.Link
type Block = block.Block
type Node = ipld.Node

// Builder is a value that can express itself as an IPLD node.
type Builder interface {
	ToIPLD() (Node, error)
}

// WrapWithRecovery binds ptrVal to typ, converting the panics bindnode raises
// on schema mismatch into errors.
func WrapWithRecovery(ptrVal any, typ schema.Type, opts ...bindnode.Option) (nd Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok {
				err = fmt.Errorf("wrapping node: %w", asErr)
			} else {
				err = fmt.Errorf("wrapping node: %v", r)
			}
		}
	}()
	return bindnode.Wrap(ptrVal, typ, opts...).Representation(), nil
}
