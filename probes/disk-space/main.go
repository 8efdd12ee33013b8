// Command disk-space is the RSV disk space probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/diskspace"
)

func main() {
	if err := cmd.ExecuteProbe(diskspace.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
