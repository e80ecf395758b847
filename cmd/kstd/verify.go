package main

import (
	"fmt"
	"os"

	"github.com/kstd-project/go-kstd/core/car"
	"github.com/kstd-project/go-kstd/core/content"
	"github.com/kstd-project/go-kstd/core/content/datamodel"
	"github.com/kstd-project/go-kstd/core/dag/blockstore"
	"github.com/kstd-project/go-kstd/core/ipld"
	"github.com/kstd-project/go-kstd/core/ipld/codec/cbor"
	"github.com/kstd-project/go-kstd/core/ipld/codec/json"
	"github.com/kstd-project/go-kstd/core/iterable"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "verify FILE.car",
		Short: "Check every block of a content archive against its identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			roots, blocks, err := car.Decode(f)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			bs, err := blockstore.NewBlockStore()
			if err != nil {
				return err
			}
			n := 0
			for blk, err := range iterable.Seq2(blocks) {
				if err != nil {
					return fmt.Errorf("reading block %d: %w", n, err)
				}
				if err := content.Verify(blk); err != nil {
					return err
				}
				if err := bs.Put(blk); err != nil {
					return err
				}
				n++
			}
			log.Debugw("verified", "archive", args[0], "blocks", n)

			out := cmd.OutOrStdout()
			for _, r := range roots {
				if !isManifest(r) {
					fmt.Fprintf(out, "root %s\n", r)
					continue
				}
				bundle, err := content.OpenBundle(r, bs)
				if err != nil {
					return fmt.Errorf("opening manifest %s: %w", r, err)
				}
				fmt.Fprintf(out, "root %s (%d entries)\n", r, len(bundle.Entries()))
				if asJSON {
					mdl := bundle.Manifest()
					b, err := json.Encode(&mdl, datamodel.ManifestType())
					if err != nil {
						return fmt.Errorf("encoding manifest: %w", err)
					}
					fmt.Fprintf(out, "%s\n", b)
					continue
				}
				for _, e := range bundle.Entries() {
					fmt.Fprintf(out, "  %s  %d  %s\n", e.Content, e.Size, e.Name)
				}
			}
			fmt.Fprintf(out, "ok %d blocks\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print manifests as dag-json")
	return cmd
}

func isManifest(root ipld.Link) bool {
	c, err := content.ToCid(root)
	return err == nil && c.Prefix().Codec == cbor.Code
}
