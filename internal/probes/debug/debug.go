// Package debug provides the debug probe implementation. It drives the
// result aggregation through fixed sequences of findings.
package debug

import (
	"time"

	"github.com/jandubois/rsvprobe/internal/probe"
)

// Name is the probe subcommand name.
const Name = "debug"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Debug", "org.osg.debug.status", probe.MetricTypeStatus, "")

// Modes lists the supported behaviors.
var Modes = []string{"ok", "warning", "critical", "unknown", "escalate", "misuse", "invalid", "noreturn"}

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run records findings according to mode. "noreturn" leaves the probe
// unfinished so the caller's fallback applies.
func Run(p *probe.Probe, mode, message string, delayMs int) {
	if delayMs > 0 {
		time.Sleep(time.Duration(delayMs) * time.Millisecond)
	}

	msg := func(def string) string {
		if message == "" {
			return def
		}
		return message
	}

	switch mode {
	case "ok":
		p.Add(probe.StatusOK, "baseline", probe.ExitOK)
		p.ReturnOK(msg("Debug probe completed successfully"))

	case "warning":
		p.ReturnWarning(msg("Debug probe simulated warning"))

	case "critical":
		p.ReturnCritical(msg("Debug probe simulated critical failure"))

	case "unknown":
		p.ReturnUnknown(msg("Debug probe simulated error"))

	case "escalate":
		// a later WARNING does not lower an earlier CRITICAL
		p.Add(probe.StatusWarning, "slow", 10)
		p.Add(probe.StatusCritical, "down", 20)
		p.Return(probe.StatusWarning, msg("recovered"), 5)

	case "misuse":
		p.AddCritical("down")
		p.ReturnUnknown(msg("lost connection"))

	case "invalid":
		p.Add(probe.Status(42), msg("bogus status"), probe.ExitOK)

	case "noreturn":
		p.AddMessage(msg("Debug probe returned without a result"))

	default:
		p.ReturnUnknown("Invalid mode: " + mode)
	}
}
