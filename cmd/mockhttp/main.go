// mockhttp CLI - check and exercise HTTP request mapping fixtures
package main

import (
	"os"

	"github.com/getmockd/mockhttp/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.Version = Version
	cli.Commit = Commit
	cli.BuildDate = BuildDate
	os.Exit(cli.Main())
}
