package main

import (
	"fmt"

	"github.com/ipld/go-ipld-prime"
	"github.com/ipld/go-ipld-prime/codec/dagjson"
	"github.com/kstd-project/go-kstd/core/digest/sha1"
	"github.com/kstd-project/go-kstd/core/except"
	"github.com/kstd-project/go-kstd/core/result"
	"github.com/kstd-project/go-kstd/core/result/failure"
	"github.com/kstd-project/go-kstd/core/result/ok"
	"github.com/spf13/cobra"
)

type check struct {
	name string
	run  func() error
}

var checks = []check{
	{"digest", sha1.SelfTest},
	{"except", except.SelfTest},
}

// runChecks runs each check on its own thread of control. A failing check
// throws its error, so the result carries the captured exception.
func runChecks(checks []check) ([]result.Result[ok.Unit, failure.IPLDBuilderFailure], error) {
	var results []result.Result[ok.Unit, failure.IPLDBuilderFailure]
	err := except.Run(func(t *except.Thread) {
		for _, c := range checks {
			results = append(results, except.Do(t, func() {
				if err := c.run(); err != nil {
					t.Throw(err)
				}
			}))
		}
	}, except.WithName("selftest"))
	return results, err
}

func newSelfTestCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run the digest and exception model conformance checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := runChecks(checks)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var failed error
			for i, r := range results {
				name := checks[i].name
				if !result.IsOk(r) {
					log.Errorw("self test failed", "check", name, "error", r.Error())
					if failed == nil {
						failed = fmt.Errorf("%s self test failed: %w", name, r.Error())
					}
				}
				if asJSON {
					nd, err := result.MatchResultR2(r, ok.Unit.ToIPLD, failure.IPLDBuilderFailure.ToIPLD)
					if err != nil {
						return fmt.Errorf("encoding %s result: %w", name, err)
					}
					b, err := ipld.Encode(nd, dagjson.Encode)
					if err != nil {
						return fmt.Errorf("encoding %s result: %w", name, err)
					}
					fmt.Fprintf(out, "%s: %s\n", name, b)
					continue
				}
				if result.IsOk(r) {
					fmt.Fprintf(out, "%s: ok\n", name)
				} else {
					fmt.Fprintf(out, "%s: FAIL %s\n", name, r.Error())
				}
			}
			return failed
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print each result as dag-json")
	return cmd
}
