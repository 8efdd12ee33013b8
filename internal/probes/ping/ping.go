// Package ping provides the ping-host probe: a TCP reachability check of a
// remote service.
package ping

import (
	"context"
	"fmt"

	"github.com/jandubois/rsvprobe/internal/netutil"
	"github.com/jandubois/rsvprobe/internal/probe"
)

// Name is the probe subcommand name.
const Name = "ping"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Host", "org.osg.general.ping-host", probe.MetricTypeStatus, "")

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run connects to the host given by -h or -u. A port in the URI takes
// precedence over port. The local host is never checked implicitly.
func Run(ctx context.Context, p *probe.Probe, port int) {
	host := netutil.URI2Host(p.Config.URI)
	if p.Config.URI == "" || host == "" {
		p.ReturnUnknown("host argument is required")
		return
	}
	port = netutil.URI2Port(p.Config.URI, port)
	if port == 0 {
		port = netutil.DefaultPingPort
	}

	if timeout := p.Config.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	p.Debug("connecting to %s:%d", host, port)
	if err := netutil.Ping(ctx, host, port); err != nil {
		p.ReturnCritical(fmt.Sprintf("Connection to %s:%d failed: %v", host, port, err))
		return
	}
	p.ReturnOK(fmt.Sprintf("Connection to %s:%d successful", host, port))
}
