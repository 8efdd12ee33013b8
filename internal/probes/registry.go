// Package probes provides the built-in probe registry.
package probes

import (
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes/command"
	"github.com/jandubois/rsvprobe/internal/probes/debug"
	"github.com/jandubois/rsvprobe/internal/probes/diskspace"
	"github.com/jandubois/rsvprobe/internal/probes/dnslookup"
	"github.com/jandubois/rsvprobe/internal/probes/httpdoc"
	"github.com/jandubois/rsvprobe/internal/probes/ping"
	"github.com/jandubois/rsvprobe/internal/probes/siteinfo"
)

// AllMetrics returns the metrics of all built-in probes.
func AllMetrics() []probe.Metric {
	var metrics []probe.Metric
	for _, m := range [][]probe.Metric{
		command.Metrics(),
		debug.Metrics(),
		diskspace.Metrics(),
		dnslookup.Metrics(),
		httpdoc.Metrics(),
		ping.Metrics(),
		siteinfo.Metrics(),
	} {
		metrics = append(metrics, m...)
	}
	return metrics
}

// Describe returns the WLCG description of every built-in metric.
func Describe() string {
	var r probe.Registry
	r.Register(AllMetrics()...)
	return r.Describe()
}
