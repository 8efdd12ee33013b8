// Package dnslookup provides the dns-lookup probe. It queries a resolver directly
// instead of going through the system resolver.
package dnslookup

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jandubois/rsvprobe/internal/netutil"
	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/miekg/dns"
)

// Name is the probe subcommand name.
const Name = "dns"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Host", "org.osg.general.dns-lookup", probe.MetricTypeStatus, "")

// ResolvConf is read when no resolver is given.
var ResolvConf = "/etc/resolv.conf"

const defaultTimeout = 10 * time.Second

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run looks up records of type recordType for the configured host.
func Run(ctx context.Context, p *probe.Probe, resolver, recordType string) {
	host := netutil.URI2Host(p.Config.URI)
	if p.Config.URI == "" || host == "" {
		p.ReturnUnknown("host argument is required")
		return
	}

	recordType = strings.ToUpper(recordType)
	qtype, ok := dns.StringToType[recordType]
	if !ok {
		p.ReturnUnknown(fmt.Sprintf("Unsupported record type %s", recordType))
		return
	}

	server, err := resolverAddr(resolver)
	if err != nil {
		p.ReturnUnknown(fmt.Sprintf("No resolver available: %v", err))
		return
	}

	timeout := p.Config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	client := &dns.Client{Timeout: timeout}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), qtype)
	msg.RecursionDesired = true

	in, rtt, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		p.ReturnUnknown(fmt.Sprintf("Query to %s failed: %v", server, err))
		return
	}
	p.Debug("%s answered in %s", server, rtt)

	if in.Rcode != dns.RcodeSuccess {
		p.ReturnCritical(fmt.Sprintf("%s lookup of %s returned %s", recordType, host, dns.RcodeToString[in.Rcode]))
		return
	}

	found := 0
	for _, rr := range in.Answer {
		if rr.Header().Rrtype != qtype {
			continue
		}
		found++
		p.AddMessage(rr.String())
	}
	if found == 0 {
		p.ReturnCritical(fmt.Sprintf("No %s records for %s", recordType, host))
		return
	}
	p.ReturnOK(fmt.Sprintf("%d %s record(s) for %s", found, recordType, host))
}

func resolverAddr(resolver string) (string, error) {
	if resolver == "" {
		cfg, err := dns.ClientConfigFromFile(ResolvConf)
		if err != nil {
			return "", err
		}
		if len(cfg.Servers) == 0 {
			return "", fmt.Errorf("no nameserver in %s", ResolvConf)
		}
		return net.JoinHostPort(cfg.Servers[0], cfg.Port), nil
	}
	if _, _, err := net.SplitHostPort(resolver); err != nil {
		return net.JoinHostPort(resolver, "53"), nil
	}
	return resolver, nil
}
