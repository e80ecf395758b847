package content

import (
	"fmt"
	"io"

	"github.com/kstd-project/go-kstd/core/car"
	"github.com/kstd-project/go-kstd/core/content/datamodel"
	"github.com/kstd-project/go-kstd/core/dag/blockstore"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/ipld/block"
	"github.com/kstd-project/go-kstd/core/ipld/codec/cbor"
	"github.com/kstd-project/go-kstd/core/iterable"
)

// File is a named buffer to be packed.
type File struct {
	Name string
	Data []byte
}

// Bundle is a set of content blocks rooted at a dag-cbor manifest that names
// them. It is an ipld.View, so it can be archived as a CAR.
type Bundle struct {
	root     ipld.Block
	manifest datamodel.ManifestModel
	blocks   blockstore.BlockReader
}

var _ ipld.View = (*Bundle)(nil)

func (b *Bundle) Root() ipld.Block {
	return b.root
}

// Blocks yields the manifest first, then the content blocks.
func (b *Bundle) Blocks() iterable.Iterator[ipld.Block] {
	return iterable.FromSeq2(b.blocks.Iterator())
}

// Entries lists the packed files in the order they were added.
func (b *Bundle) Entries() []datamodel.EntryModel {
	return b.manifest.Entries
}

func (b *Bundle) Manifest() datamodel.ManifestModel {
	return b.manifest
}

// Get returns the content of the named entry.
func (b *Bundle) Get(name string) ([]byte, bool, error) {
	for _, e := range b.manifest.Entries {
		if e.Name != name {
			continue
		}
		blk, ok, err := b.blocks.Get(e.Content)
		if err != nil || !ok {
			return nil, ok, err
		}
		return blk.Bytes(), true, nil
	}
	return nil, false, nil
}

// Archive encodes the bundle as a CAR with the manifest as its only root.
func (b *Bundle) Archive() io.Reader {
	return car.Encode([]ipld.Link{b.root.Link()}, b.Blocks())
}

// Pack addresses each file as a content block and roots them at a manifest.
// Files with identical content share a block.
func Pack(files []File, options ...Option) (*Bundle, error) {
	cfg, err := newConfig(options)
	if err != nil {
		return nil, err
	}

	manifest := datamodel.ManifestModel{Entries: []datamodel.EntryModel{}}
	var blks []ipld.Block
	for _, f := range files {
		blk, err := NewBlock(f.Data, options...)
		if err != nil {
			return nil, fmt.Errorf("addressing %s: %w", f.Name, err)
		}
		blks = append(blks, blk)
		manifest.Entries = append(manifest.Entries, datamodel.EntryModel{
			Name:    f.Name,
			Size:    int64(len(f.Data)),
			Content: blk.Link(),
		})
	}

	root, err := block.Encode(&manifest, datamodel.ManifestType(), cbor.Codec, cfg.hasher)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	bs, err := blockstore.NewBlockStore(blockstore.WithBlocks(append([]ipld.Block{root}, blks...)))
	if err != nil {
		return nil, err
	}
	return &Bundle{root: root, manifest: manifest, blocks: bs}, nil
}

// OpenBundle decodes the manifest at root and checks that every entry it
// names is present in br and intact.
func OpenBundle(root ipld.Link, br blockstore.BlockReader) (*Bundle, error) {
	rblk, ok, err := br.Get(root)
	if err != nil {
		return nil, fmt.Errorf("getting manifest: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("missing manifest block: %s", root)
	}

	c, err := ToCid(root)
	if err != nil {
		return nil, err
	}
	if c.Prefix().Codec != cbor.Code {
		return nil, fmt.Errorf("manifest %s is not dag-cbor", root)
	}
	hasher, ok := HasherFor(c.Prefix().MhType)
	if !ok {
		return nil, fmt.Errorf("unsupported manifest hash: 0x%x", c.Prefix().MhType)
	}

	manifest := datamodel.ManifestModel{}
	if err := block.Decode(rblk, &manifest, datamodel.ManifestType(), cbor.Codec, hasher); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}

	for _, e := range manifest.Entries {
		blk, ok, err := br.Get(e.Content)
		if err != nil {
			return nil, fmt.Errorf("getting %s: %w", e.Name, err)
		}
		if !ok {
			return nil, fmt.Errorf("missing block for %s: %s", e.Name, e.Content)
		}
		if err := Verify(blk); err != nil {
			return nil, fmt.Errorf("verifying %s: %w", e.Name, err)
		}
		if int64(len(blk.Bytes())) != e.Size {
			return nil, fmt.Errorf("size mismatch for %s: manifest says %d, block has %d", e.Name, e.Size, len(blk.Bytes()))
		}
	}

	return &Bundle{root: rblk, manifest: manifest, blocks: br}, nil
}

// Extract reads a bundle back from a CAR produced by Archive.
func Extract(r io.Reader) (*Bundle, error) {
	roots, blocks, err := car.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding CAR: %w", err)
	}
	if len(roots) != 1 {
		return nil, fmt.Errorf("unexpected number of roots: %d, expected: 1", len(roots))
	}
	br, err := blockstore.NewBlockReader(blockstore.WithBlocksIterator(iterable.Seq2(blocks)))
	if err != nil {
		return nil, fmt.Errorf("reading blocks: %w", err)
	}
	return OpenBundle(roots[0], br)
}
