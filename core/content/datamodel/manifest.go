package datamodel

import (
	// to use go:embed
	_ "embed"
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/schema"
)

//go:embed manifest.ipldsch
var manifestSchema []byte

// EntryModel names one packed content block.
type EntryModel struct {
	Name    string
	Size    int64
	Content ipld.Link
}

// ManifestModel lists the entries of a packed archive in the order they were
// added.
type ManifestModel struct {
	Entries []EntryModel
}

var manifestType schema.Type

func init() {
	ts, err := ipld.LoadSchemaBytes(manifestSchema)
	if err != nil {
		panic(fmt.Errorf("loading manifest schema: %w", err))
	}
	manifestType = ts.TypeByName("Manifest")
}

func ManifestType() schema.Type {
	return manifestType
}
