// arbitrary CLI - samples constrained random values from definition documents
package main

import (
	"os"

	"github.com/getmockd/arbitrary/pkg/cli"
)

func main() {
	os.Exit(cli.Main())
}
