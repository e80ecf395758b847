package car

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ipfs/go-cid"
	cbor "github.com/ipfs/go-ipld-cbor"
	"github.com/ipld/go-car/util"
	cidlink "github.com/ipld/go-ipld-prime/linking/cid"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/iterable"
)

// ContentType is the value the HTTP Content-Type header should have for CARs.
// See https://www.iana.org/assignments/media-types/application/vnd.ipld.car
const ContentType = "application/vnd.ipld.car"

func init() {
	cbor.RegisterCborType(carHeader{})
}

type carHeader struct {
	Roots   []cid.Cid
	Version uint64
}

func toCid(link ipld.Link) (cid.Cid, error) {
	if cl, ok := link.(cidlink.Link); ok {
		return cl.Cid, nil
	}
	return cid.Parse(link.String())
}

// Encode streams a CARv1 with the given roots followed by every block the
// iterator yields. Errors surface from the returned reader.
func Encode(roots []ipld.Link, blocks iterable.Iterator[ipld.Block]) io.Reader {
	reader, writer := io.Pipe()
	go func() {
		h := carHeader{Roots: []cid.Cid{}, Version: 1}
		for _, r := range roots {
			c, err := toCid(r)
			if err != nil {
				writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
				return
			}
			h.Roots = append(h.Roots, c)
		}
		hb, err := cbor.DumpObject(h)
		if err != nil {
			writer.CloseWithError(fmt.Errorf("writing CAR header: %w", err))
			return
		}
		if err := util.LdWrite(writer, hb); err != nil {
			writer.CloseWithError(err)
			return
		}
		for {
			block, err := blocks.Next()
			if err != nil {
				if err == io.EOF {
					break
				}
				writer.CloseWithError(fmt.Errorf("writing CAR blocks: %w", err))
				return
			}
			if err := util.LdWrite(writer, []byte(block.Link().Binary()), block.Bytes()); err != nil {
				writer.CloseWithError(err)
				return
			}
		}
		writer.Close()
	}()
	return reader
}

// Decode reads the CAR header and returns the roots and an iterator over the
// blocks. Each block is checked against its CID as it is read.
func Decode(reader io.Reader) ([]ipld.Link, iterable.Iterator[ipld.Block], error) {
	br := bufio.NewReader(reader)

	hb, err := util.LdRead(br)
	if err != nil {
		return nil, nil, err
	}

	var ch carHeader
	if err := cbor.DecodeInto(hb, &ch); err != nil {
		return nil, nil, fmt.Errorf("invalid header: %v", err)
	}

	if ch.Version != 1 {
		return nil, nil, fmt.Errorf("invalid car version: %d", ch.Version)
	}

	roots := make([]ipld.Link, 0, len(ch.Roots))
	for _, r := range ch.Roots {
		roots = append(roots, cidlink.Link{Cid: r})
	}

	done := false
	return roots, iterable.NewIterator(func() (ipld.Block, error) {
		if done {
			return nil, io.EOF
		}
		cid, bytes, err := util.ReadNode(br)
		if err != nil {
			done = true
			if errors.Is(err, io.EOF) {
				return nil, io.EOF
			}
			return nil, err
		}

		hashed, err := cid.Prefix().Sum(bytes)
		if err != nil {
			return nil, err
		}

		if !hashed.Equals(cid) {
			return nil, fmt.Errorf("mismatch in content integrity, name: %s, data: %s", cid, hashed)
		}

		return ipld.NewBlockUnsafe(cidlink.Link{Cid: cid}, bytes), nil
	}), nil
}
