// Command debug is an RSV probe that reports a chosen status, for testing
// collectors and the result aggregation.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/debug"
)

func main() {
	if err := cmd.ExecuteProbe(debug.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
