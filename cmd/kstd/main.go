// Command kstd computes digests and content identifiers, packs files into
// content archives and runs the library conformance checks.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
