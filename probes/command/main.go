// Command command runs a shell command as an RSV probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/command"
)

func main() {
	if err := cmd.ExecuteProbe(command.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
