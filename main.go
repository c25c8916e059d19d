package main

import (
	"os"

	"github.com/lakshaymaurya-felt/trash/cmd"
)

// Set by the linker: -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersionInfo(version, commit, date)
	os.Exit(cmd.ExitCode(cmd.Execute()))
}
