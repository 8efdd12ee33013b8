// Package probetest builds probes whose output and exit are captured, for
// use in tests.
package probetest

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/jandubois/rsvprobe/internal/probe"
)

// Capture records what a probe printed and the code it exited with.
type Capture struct {
	Stdout   bytes.Buffer
	ExitCode int
	Exited   bool
}

// New returns a probe that writes to the capture instead of stdout and
// records its exit instead of terminating the test binary.
func New(name string, opts ...probe.Option) (*probe.Probe, *Capture) {
	c := &Capture{ExitCode: -1}
	base := []probe.Option{
		probe.WithStdout(&c.Stdout),
		probe.WithExit(func(code int) {
			c.ExitCode = code
			c.Exited = true
		}),
		probe.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	p := probe.New(name, "test", append(base, opts...)...)
	return p, c
}
