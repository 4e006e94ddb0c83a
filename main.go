// Command scanlog scans directory trees for file metadata and tallies
// keyword followers in chat exports.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/scanlog/internal/cli"
)

// Version is set at build time.
var version = "unknown - unofficial build"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
