// Command site-info reports the OSG site configuration as an RSV probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/siteinfo"
)

func main() {
	if err := cmd.ExecuteProbe(siteinfo.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
