// Package command provides the command probe implementation.
package command

import (
	"context"
	"fmt"
	"strings"

	units "github.com/docker/go-units"
	"github.com/jandubois/rsvprobe/internal/fsutil"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/shell"
)

// Name is the probe subcommand name.
const Name = "command"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Local-Monitor", "org.osg.general.command", probe.MetricTypeStatus, "")

const maxOutput = 10000

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run executes command, with args quoted and appended, and maps its exit code
// to a status. Codes in neither set are CRITICAL.
func Run(ctx context.Context, p *probe.Probe, command string, args []string, okCodes, warningCodes string, captureOutput bool) {
	if command == "" {
		p.ReturnUnknown("command argument is required")
		return
	}

	okCodeSet := parseCodeSet(okCodes)
	warningCodeSet := parseCodeSet(warningCodes)

	line := command
	if len(args) > 0 {
		line += " " + shell.Quote(args...)
	}
	if words, err := shell.Split(command); err == nil && len(words) > 0 {
		if fsutil.Which(words[0]) == "" {
			p.Debug("%s not found in PATH", words[0])
		}
	}
	if timeout := p.Config.Timeout; timeout > 0 {
		p.Debug("running %q with a %s timeout", line, units.HumanDuration(timeout))
	} else {
		p.Debug("running %q", line)
	}

	exitCode, output := shell.Run(ctx, line, p.Config.Timeout, "")

	if captureOutput {
		for _, l := range strings.Split(strings.TrimRight(truncate(output, maxOutput), "\n"), "\n") {
			if l != "" {
				p.AddMessage(l)
			}
		}
	}

	switch {
	case okCodeSet[exitCode]:
		p.ReturnOK("Command completed successfully")
	case warningCodeSet[exitCode]:
		p.ReturnWarning(fmt.Sprintf("Command exited with code %d", exitCode))
	default:
		p.ReturnCritical(fmt.Sprintf("Command exited with code %d", exitCode))
	}
}

func parseCodeSet(codes string) map[int]bool {
	set := make(map[int]bool)
	if codes == "" {
		return set
	}
	for _, part := range strings.Split(codes, ",") {
		var code int
		if _, err := fmt.Sscanf(strings.TrimSpace(part), "%d", &code); err == nil {
			set[code] = true
		}
	}
	return set
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... (truncated)"
}
