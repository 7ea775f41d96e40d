// Command filescan reports the largest files of a directory.
package main

import (
	"fmt"
	"os"

	"github.com/AgaevDavid/filescan/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintf(os.Stderr, "kind: %s\n", cli.Kind(err))
		os.Exit(1)
	}
}
