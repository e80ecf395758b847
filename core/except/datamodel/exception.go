package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
	fdm "github.com/kstd-project/go-kstd/core/result/failure/datamodel"
)

//go:embed exception.ipldsch
var exceptionSchema []byte

// ExceptionModel is the serialisable report of a captured exception. Nested
// lists the chain of exceptions it was thrown with, outermost first.
type ExceptionModel struct {
	Name    string
	Message string
	Stack   *string
	Nested  []fdm.FailureModel
}

var exceptionType schema.Type

func init() {
	ts, err := ipld.LoadSchemaBytes(exceptionSchema)
	if err != nil {
		panic(fmt.Errorf("loading exception schema: %w", err))
	}
	exceptionType = ts.TypeByName("Exception")
}

func ExceptionType() schema.Type {
	return exceptionType
}
