// Command ping is the RSV TCP reachability probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/ping"
)

func main() {
	if err := cmd.ExecuteProbe(ping.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
