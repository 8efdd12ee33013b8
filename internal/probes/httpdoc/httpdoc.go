// Package httpdoc provides the http-doc probe: it retrieves a document from
// a remote web service and optionally looks for a string in it.
package httpdoc

import (
	"context"
	"fmt"
	"strings"

	"github.com/jandubois/rsvprobe/internal/netutil"
	"github.com/jandubois/rsvprobe/internal/probe"
)

// Name is the probe subcommand name.
const Name = "http-doc"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-HTTP", "org.osg.general.http-doc", probe.MetricTypeStatus, "")

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run fetches the configured URI. A non-empty match must appear in the
// document, otherwise the result is a WARNING.
func Run(ctx context.Context, p *probe.Probe, match string, quote bool) {
	url := p.Config.URI
	if url == "" {
		p.ReturnUnknown("uri argument is required")
		return
	}
	if !strings.Contains(url, "://") {
		url = "http://" + url
	}

	if timeout := p.Config.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	lines, err := netutil.GetHTTPDoc(ctx, url, quote)
	if err != nil {
		p.ReturnCritical(fmt.Sprintf("Unable to retrieve %s: %v", url, err))
		return
	}
	p.AddMessage(fmt.Sprintf("Retrieved %d lines from %s", len(lines), url))

	if match != "" {
		found := false
		for _, l := range lines {
			if strings.Contains(l, match) {
				p.Debug("match: %s", l)
				found = true
				break
			}
		}
		if !found {
			p.ReturnWarning(fmt.Sprintf("%q not found in %s", match, url))
			return
		}
	}
	p.ReturnOK(fmt.Sprintf("Retrieved %s", url))
}
