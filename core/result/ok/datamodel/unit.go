// Package datamodel holds the IPLD schema of the unit success value.
package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"
	"sync"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
)

//go:embed unit.ipldsch
var unitSchema []byte

var loadUnitType = sync.OnceValue(func() schema.Type {
	ts, err := ipld.LoadSchemaBytes(unitSchema)
	if err != nil {
		panic(fmt.Errorf("loading unit schema: %w", err))
	}
	return ts.TypeByName("Unit")
})

// UnitType is the schema type of a value-less success: a struct with no
// fields, represented as an empty map.
func UnitType() schema.Type {
	return loadUnitType()
}
