// Command http-doc fetches a document from a web service as an RSV probe.
package main

import (
	"os"

	"github.com/jandubois/rsvprobe/cmd"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/httpdoc"
)

func main() {
	if err := cmd.ExecuteProbe(httpdoc.Name); err != nil {
		os.Exit(probe.ExitUnknown)
	}
}
