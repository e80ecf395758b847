package main

import (
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var log = logging.Logger("kstd")

// EnvPrefix prefixes the environment variables that override flags, e.g.
// KSTD_LOG_LEVEL or KSTD_HASH.
const EnvPrefix = "KSTD"

func newConfig() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("log-level", "warn")
	v.SetDefault("base", "base32")
	v.SetDefault("hash", "sha1")
	return v
}

func newRootCmd() *cobra.Command {
	v := newConfig()

	root := &cobra.Command{
		Use:           "kstd",
		Short:         "Content digests, identifiers and archives",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logging.LevelFromString(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			logging.SetAllLoggers(lvl)
			return nil
		},
	}

	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	// nolint:errcheck
	v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	root.PersistentFlags().String("hash", "sha1", "hash function content is addressed with (sha1, sha2-256)")
	// nolint:errcheck
	v.BindPFlag("hash", root.PersistentFlags().Lookup("hash"))

	root.AddCommand(
		newDigestCmd(),
		newCidCmd(v),
		newPackCmd(v),
		newVerifyCmd(),
		newSelfTestCmd(),
	)
	return root
}
