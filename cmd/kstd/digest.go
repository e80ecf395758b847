package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kstd-project/go-kstd/core/digest/sha1"
	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest [FILE...]",
		Short: "Print the sha1 digest of each file, or of stdin when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(cmd, args, func(name string, r io.Reader) error {
				e := sha1.New()
				if _, err := io.Copy(e, r); err != nil {
					return fmt.Errorf("reading %s: %w", name, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Finalize(), name)
				return nil
			})
		},
	}
}

// eachInput opens every named file in turn, or reads the command's stdin when
// args is empty or names "-".
func eachInput(cmd *cobra.Command, args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, name := range args {
		if name == "-" {
			if err := fn(name, cmd.InOrStdin()); err != nil {
				return err
			}
			continue
		}
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = fn(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
