package cmd

import (
	"fmt"
	"io"
)

// wantsVersion reports whether --version appears before any "--"
// terminator.
func wantsVersion(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--version" {
			return true
		}
	}
	return false
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version %s (%s, built %s)\n", programName, appVersion, appCommit, appDate)
	fmt.Fprintln(w, "Licensed under the GNU GPLv2 as published by the Free Software Foundation.")
}
