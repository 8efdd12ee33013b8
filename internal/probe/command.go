package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/jandubois/rsvprobe/internal/config"
	"github.com/jandubois/rsvprobe/internal/netutil"
	"github.com/spf13/cobra"
)

// RunFunc is the body of a probe. It should finish with one of the Return
// methods.
type RunFunc func(ctx context.Context, p *Probe)

const noResultText = "Probe terminated without reporting a result"

// Command builds a cobra command carrying the standard RSV probe options.
// Probe-specific flags can be added to the returned command.
func (p *Probe) Command(use, short string, run RunFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Long:          p.HelpMessage,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRun: func(cmd *cobra.Command, args []string) {
			p.applyFlags(cmd)
		},
		Run: func(cmd *cobra.Command, args []string) {
			if p.finished {
				return
			}
			p.Args = args
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			run(ctx, p)
			if !p.finished {
				p.ReturnUnknown(noResultText)
			}
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		p.ReturnUnknown(fmt.Sprintf("Invalid option (%s). Aborting probe", err))
		return err
	})

	flags := cmd.Flags()
	flags.StringP("metric", "m", "", "which metric output is desired")
	flags.BoolP("list", "l", false, "list all the metrics supported by the probe")
	flags.StringP("uri", "u", "", "URI passed to the metric (host or hierarchical URI as in rfc2396/3986)")
	flags.StringP("host", "h", "", "HOST passed to the metric (hostname[:port])")
	flags.IntP("timeout", "t", 0, "set a timeout (seconds) for the probe execution")
	flags.StringP("proxy", "x", p.Config.X509Proxy, "set the user proxy to CERTFILE")
	flags.String("usercert", "", "set user x509 certificate to CERTFILE")
	flags.String("userkey", "", "set user x509 key to KEYFILE")
	flags.String("output-type", string(config.OutputShort), "output TYPE (short, wlcg)")
	flags.StringP("output", "o", "", "write the output to FILE instead of stdout")
	flags.String("vo", "", "VO the metric is gathered for")
	flags.Int("details-max-length", 0, "truncate detailsData to this length in wlcg output (0: no limit)")
	flags.Bool("compat-exit-code", false, "exit 0 unless the status is UNKNOWN, then 1")
	flags.BoolP("version", "V", false, "print probe version and exit")
	flags.BoolP("help", "?", false, "print help message and exit")
	flags.BoolP("verbose", "v", false, "verbose output")

	return cmd
}

func (p *Probe) applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	cfg := p.Config

	if v, _ := flags.GetBool("version"); v {
		fmt.Fprintln(p.stdout, p.VersionString())
		p.terminate(ExitOK)
		return
	}
	if l, _ := flags.GetBool("list"); l {
		fmt.Fprint(p.stdout, p.Metrics.Describe())
		p.terminate(ExitOK)
		return
	}

	verbose, _ := flags.GetBool("verbose")
	p.SetVerbose(verbose)

	cfg.OutputFile, _ = flags.GetString("output")
	cfg.X509Proxy, _ = flags.GetString("proxy")
	cfg.X509UserCert, _ = flags.GetString("usercert")
	cfg.X509UserKey, _ = flags.GetString("userkey")
	cfg.VOName, _ = flags.GetString("vo")
	cfg.DetailsMaxLength, _ = flags.GetInt("details-max-length")
	cfg.ForceCompatibleExitCode, _ = flags.GetBool("compat-exit-code")
	if secs, _ := flags.GetInt("timeout"); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}

	host, _ := flags.GetString("host")
	uri, _ := flags.GetString("uri")
	switch {
	case flags.Changed("host") && flags.Changed("uri"):
		cfg.Host, cfg.URI = host, uri
	case flags.Changed("host"):
		cfg.Host, cfg.URI = host, host
	case flags.Changed("uri"):
		cfg.Host, cfg.URI = netutil.URI2Host(uri), uri
	}

	outputType, _ := flags.GetString("output-type")
	mode, err := config.ParseOutputMode(outputType)
	if err != nil {
		p.ReturnUnknown(fmt.Sprintf("Unsupported output-type: %s. Use --help to list valid options (short,wlcg). Aborting probe", outputType))
		return
	}
	cfg.Output = mode

	if flags.Changed("metric") {
		name, _ := flags.GetString("metric")
		if _, ok := p.Metrics.Get(name); !ok {
			p.ReturnUnknown(fmt.Sprintf("Unsupported metric %s. Use --list to list supported metrics. Aborting probe", name))
			return
		}
		cfg.MetricName = name
	} else if metrics := p.Metrics.List(); cfg.MetricName == "" && len(metrics) == 1 {
		// a single-metric probe reports that metric without -m
		cfg.MetricName = metrics[0].Name
	}
}

// terminate exits without a report, as for --version and --list.
func (p *Probe) terminate(code int) {
	p.finished = true
	p.exit(code)
}
