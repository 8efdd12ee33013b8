// Command dns is the RSV DNS lookup probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/dnslookup"
)

func main() {
	if err := cmd.ExecuteProbe(dnslookup.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
