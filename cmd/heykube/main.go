// HEYKUBE smart cube toolkit - CLI for connecting to, recording, and driving a HEYKUBE.
package main

import (
	"github.com/mtouzot/heykube/internal/cli"
)

func main() {
	cli.Execute()
}
