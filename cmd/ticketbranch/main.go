// Command ticketbranch creates git branches named after Jira tickets.
package main

import (
	"fmt"
	"os"

	"github.com/randalmurphal/ticketbranch/cli"
	"github.com/randalmurphal/ticketbranch/errors"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	if err := cli.Execute(Version, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(errors.ExitCode(err))
	}
}
