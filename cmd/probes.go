package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probes"
	"github.com/jandubois/rsvprobe/internal/probes/command"
	"github.com/jandubois/rsvprobe/internal/probes/debug"
	"github.com/jandubois/rsvprobe/internal/probes/diskspace"
	"github.com/jandubois/rsvprobe/internal/probes/dnslookup"
	"github.com/jandubois/rsvprobe/internal/probes/httpdoc"
	"github.com/jandubois/rsvprobe/internal/probes/ping"
	"github.com/jandubois/rsvprobe/internal/probes/siteinfo"
	"github.com/spf13/cobra"
)

// newProbe creates a probe supporting metrics.
func newProbe(name, version string, metrics []probe.Metric, opts []probe.Option) *probe.Probe {
	all := make([]probe.Option, 0, len(opts)+1)
	all = append(all, opts...)
	all = append(all, probe.WithMetrics(metrics...))
	return probe.New(name, version, all...)
}

// disk-space probe
func newDiskSpaceCmd(opts ...probe.Option) *cobra.Command {
	var (
		path           string
		minFreeGB      float64
		minFreePercent float64
	)
	p := newProbe(diskspace.Name, diskspace.Version, diskspace.Metrics(), opts)
	cmd := p.Command(diskspace.Name, "Check available disk space on a path", func(ctx context.Context, p *probe.Probe) {
		diskspace.Run(p, path, minFreeGB, minFreePercent)
	})
	cmd.Flags().StringVar(&path, "path", "/", "Path to check")
	cmd.Flags().Float64Var(&minFreeGB, "min_free_gb", 10, "Minimum free gigabytes")
	cmd.Flags().Float64Var(&minFreePercent, "min_free_percent", 0, "Minimum free percentage (0-100)")
	return cmd
}

// command probe
func newCommandCmd(opts ...probe.Option) *cobra.Command {
	var (
		cmdStr        string
		okCodes       string
		warningCodes  string
		captureOutput bool
	)
	p := newProbe(command.Name, command.Version, command.Metrics(), opts)
	p.HelpMessage = "Arguments after -- are quoted and appended to the command."
	cmd := p.Command(command.Name+" [flags] [-- args...]", "Run a command and check its exit code", func(ctx context.Context, p *probe.Probe) {
		command.Run(ctx, p, cmdStr, p.Args, okCodes, warningCodes, captureOutput)
	})
	cmd.Flags().StringVar(&cmdStr, "command", "", "Command to run")
	cmd.Flags().StringVar(&okCodes, "ok_codes", "0", "Comma-separated exit codes that indicate success")
	cmd.Flags().StringVar(&warningCodes, "warning_codes", "", "Comma-separated exit codes that indicate warning")
	cmd.Flags().BoolVar(&captureOutput, "capture_output", true, "Include command output in the details")
	return cmd
}

// debug probe
func newDebugCmd(opts ...probe.Option) *cobra.Command {
	var (
		mode    string
		message string
		delayMs int
	)
	p := newProbe(debug.Name, debug.Version, debug.Metrics(), opts)
	cmd := p.Command(debug.Name, "Debug probe for testing result aggregation", func(ctx context.Context, p *probe.Probe) {
		debug.Run(p, mode, message, delayMs)
	})
	cmd.Flags().StringVar(&mode, "mode", "ok", fmt.Sprintf("Probe behavior mode %v", debug.Modes))
	cmd.Flags().StringVar(&message, "message", "", "Custom message to return")
	cmd.Flags().IntVar(&delayMs, "delay_ms", 0, "Delay before responding (milliseconds)")
	return cmd
}

// ping probe
func newPingCmd(opts ...probe.Option) *cobra.Command {
	var port int
	p := newProbe(ping.Name, ping.Version, ping.Metrics(), opts)
	p.Config.IsLocal = false
	cmd := p.Command(ping.Name, "Check that a TCP port accepts connections", func(ctx context.Context, p *probe.Probe) {
		ping.Run(ctx, p, port)
	})
	cmd.Flags().IntVar(&port, "port", 80, "TCP port, unless the URI has one")
	return cmd
}

// dns probe
func newDNSCmd(opts ...probe.Option) *cobra.Command {
	var resolver, record string
	p := newProbe(dnslookup.Name, dnslookup.Version, dnslookup.Metrics(), opts)
	p.Config.IsLocal = false
	cmd := p.Command(dnslookup.Name, "Look up DNS records of a host", func(ctx context.Context, p *probe.Probe) {
		dnslookup.Run(ctx, p, resolver, record)
	})
	cmd.Flags().StringVar(&resolver, "resolver", "", "Resolver address (default: first nameserver in /etc/resolv.conf)")
	cmd.Flags().StringVar(&record, "record", "A", "Record type to query")
	return cmd
}

// http-doc probe
func newHTTPDocCmd(opts ...probe.Option) *cobra.Command {
	var (
		match string
		quote bool
	)
	p := newProbe(httpdoc.Name, httpdoc.Version, httpdoc.Metrics(), opts)
	p.Config.IsLocal = false
	cmd := p.Command(httpdoc.Name, "Retrieve a document from a web service", func(ctx context.Context, p *probe.Probe) {
		httpdoc.Run(ctx, p, match, quote)
	})
	cmd.Flags().StringVar(&match, "match", "", "Text the document must contain")
	cmd.Flags().BoolVar(&quote, "quote", true, "Escape the URI path before the request")
	return cmd
}

// site-info probe
func newSiteInfoCmd(opts ...probe.Option) *cobra.Command {
	p := newProbe(siteinfo.Name, siteinfo.Version, siteinfo.Metrics(), opts)
	return p.Command(siteinfo.Name, "Report the OSG site configuration", func(ctx context.Context, p *probe.Probe) {
		siteinfo.Run(p)
	})
}

func probeCommands(opts ...probe.Option) []*cobra.Command {
	return []*cobra.Command{
		newCommandCmd(opts...),
		newDebugCmd(opts...),
		newDiskSpaceCmd(opts...),
		newDNSCmd(opts...),
		newHTTPDocCmd(opts...),
		newPingCmd(opts...),
		newSiteInfoCmd(opts...),
	}
}

// ProbeCommand returns a new command for the named built-in probe.
func ProbeCommand(name string, opts ...probe.Option) (*cobra.Command, bool) {
	for _, c := range probeCommands(opts...) {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ExecuteProbe runs a built-in probe as the whole program, for the standalone
// executables under probes/.
func ExecuteProbe(name string) error {
	c, ok := ProbeCommand(name)
	if !ok {
		return fmt.Errorf("unknown probe %q", name)
	}
	c.Use = filepath.Base(os.Args[0]) + strings.TrimPrefix(c.Use, c.Name())
	return c.Execute()
}

func init() {
	// Add flags to root
	rootCmd.Flags().BoolP("version", "v", false, "Print version and exit")
	rootCmd.Flags().Bool("describe", false, "Print the WLCG description of all built-in metrics")

	// Override Run to handle flags
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Fprintf(cmd.OutOrStdout(), "rsvprobe version %s\n", Version)
			return
		}
		if describe, _ := cmd.Flags().GetBool("describe"); describe {
			fmt.Fprint(cmd.OutOrStdout(), probes.Describe())
			return
		}
		cmd.Help()
	}

	for _, c := range probeCommands() {
		c.GroupID = probeGroupID
		rootCmd.AddCommand(c)
	}
}
