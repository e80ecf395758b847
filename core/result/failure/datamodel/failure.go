package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
	kipld "github.com/kstd-project/go-kstd/core/ipld"
)

//go:embed failure.ipldsch
var failureSchema []byte

// FailureModel is a generic failure
type FailureModel struct {
	Name    *string
	Message string
	Stack   *string
}

func (f FailureModel) Error() string {
	return f.Message
}

func (f *FailureModel) ToIPLD() (ipld.Node, error) {
	return kipld.WrapWithRecovery(f, typ)
}

var typ schema.Type

func init() {
	ts, err := ipld.LoadSchemaBytes(failureSchema)
	if err != nil {
		panic(fmt.Errorf("loading failure schema: %w", err))
	}
	typ = ts.TypeByName("Failure")
}

func FailureType() schema.Type {
	return typ
}

func Schema() []byte {
	return failureSchema
}

// Bind reads a FailureModel out of a map node without requiring it to match
// the schema exactly. Keys that are missing or not strings are left unset.
func Bind(n ipld.Node) FailureModel {
	f := FailureModel{}
	if s, ok := lookupString(n, "name"); ok {
		f.Name = &s
	}
	if s, ok := lookupString(n, "message"); ok {
		f.Message = s
	}
	if s, ok := lookupString(n, "stack"); ok {
		f.Stack = &s
	}
	return f
}

func lookupString(n ipld.Node, key string) (string, bool) {
	v, err := n.LookupByString(key)
	if err != nil {
		return "", false
	}
	s, err := v.AsString()
	if err != nil {
		return "", false
	}
	return s, true
}
