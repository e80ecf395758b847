package main

import (
	"fmt"
	"io"

	"github.com/kstd-project/go-kstd/core/content"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha1"
	"github.com/kstd-project/go-kstd/core/ipld/hash/sha256"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func hasherOption(v *viper.Viper) (content.Option, error) {
	switch name := v.GetString("hash"); name {
	case "sha1":
		return content.WithHasher(sha1.Hasher), nil
	case "sha2-256":
		return content.WithHasher(sha256.Hasher), nil
	default:
		return nil, fmt.Errorf("unsupported hash: %q", name)
	}
}

func newCidCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cid [FILE...]",
		Short: "Print the content identifier of each file, or of stdin when none is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := hasherOption(v)
			if err != nil {
				return err
			}
			base, err := content.ParseBase(v.GetString("base"))
			if err != nil {
				return err
			}
			return eachInput(cmd, args, func(name string, r io.Reader) error {
				data, err := io.ReadAll(r)
				if err != nil {
					return fmt.Errorf("reading %s: %w", name, err)
				}
				c, err := content.Identify(data, opt)
				if err != nil {
					return err
				}
				s, err := content.Format(c, base)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", s, name)
				return nil
			})
		},
	}
	cmd.Flags().String("base", "base32", "multibase to print identifiers in")
	// nolint:errcheck
	v.BindPFlag("base", cmd.Flags().Lookup("base"))
	return cmd
}
