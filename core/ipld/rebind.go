package ipld

import (
	"fmt"

	"github.com/ipld/go-ipld-prime/datamodel"
	"github.com/ipld/go-ipld-prime/node/bindnode"
	"github.com/ipld/go-ipld-prime/schema"
)

// Rebind binds an untyped node (typically an Any field decoded from a block)
// to the Go type T according to typ.
func Rebind[T any](nd datamodel.Node, typ schema.Type, opts ...bindnode.Option) (val T, err error) {
	defer func() {
		if r := recover(); r != nil {
			if asErr, ok := r.(error); ok {
				err = fmt.Errorf("rebinding node: %w", asErr)
			} else {
				err = fmt.Errorf("rebinding node: %v", r)
			}
		}
	}()

	if typed, ok := nd.(schema.TypedNode); ok {
		nd = typed.Representation()
	}

	var bind T
	np := bindnode.Prototype(&bind, typ, opts...)
	nb := np.Representation().NewBuilder()
	if err = nb.AssignNode(nd); err != nil {
		return
	}
	val = *bindnode.Unwrap(nb.Build()).(*T)
	return
}
