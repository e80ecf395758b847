package ok

import (
	"github.com/kstd-project/go-kstd/core/ipld"
	udm "github.com/kstd-project/go-kstd/core/result/ok/datamodel"
)

// Unit is the success value of a computation that produces nothing, such as
// a guarded block run for its side effects.
type Unit struct{}

// ToIPLD represents Unit as an empty map.
func (u Unit) ToIPLD() (ipld.Node, error) {
	return ipld.WrapWithRecovery(&u, udm.UnitType())
}
