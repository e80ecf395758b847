package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kstd-project/go-kstd/core/content"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newPackCmd(v *viper.Viper) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pack -o OUT.car FILE...",
		Short: "Pack files into a content archive rooted at a manifest",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := hasherOption(v)
			if err != nil {
				return err
			}

			var files []content.File
			for _, name := range args {
				data, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				files = append(files, content.File{Name: filepath.Base(name), Data: data})
			}

			bundle, err := content.Pack(files, opt)
			if err != nil {
				return err
			}
			log.Debugw("packed", "root", bundle.Root().Link(), "files", len(files))

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, bundle.Archive()); err != nil {
				f.Close()
				return fmt.Errorf("writing %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), bundle.Root().Link())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "archive to write")
	// nolint:errcheck
	cmd.MarkFlagRequired("output")
	return cmd
}
