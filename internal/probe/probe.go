// Package probe implements the RSV/WLCG probe runtime: result aggregation,
// report rendering and the standard command line.
package probe

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jandubois/rsvprobe/internal/config"
)

// Default exit codes used by the Return helpers.
const (
	ExitOK       = 0
	ExitUnknown  = 1
	ExitProblem  = 2 // WARNING or CRITICAL
	compatFailed = 1
)

// Hook runs after the report is written and before the process exits.
type Hook interface {
	AtExit()
}

// HookFunc adapts a function to the Hook interface.
type HookFunc func()

// AtExit calls f.
func (f HookFunc) AtExit() { f() }

// NopHook does nothing.
type NopHook struct{}

// AtExit does nothing.
func (NopHook) AtExit() {}

// Probe is a single probe run. It collects findings and terminates the
// process with a WLCG-compliant report.
type Probe struct {
	Name        string
	Version     string
	HelpMessage string

	Config  *config.ProbeConfig
	Metrics Registry
	// Args holds the positional command-line arguments.
	Args []string

	state    *State
	hook     Hook
	stdout   io.Writer
	exit     func(int)
	logLevel *slog.LevelVar
	logger   *slog.Logger
	finished bool
}

// Option configures a Probe.
type Option func(*Probe)

// WithHook sets the hook run before exit.
func WithHook(h Hook) Option {
	return func(p *Probe) { p.hook = h }
}

// WithStdout redirects the report normally printed on stdout.
func WithStdout(w io.Writer) Option {
	return func(p *Probe) { p.stdout = w }
}

// WithExit replaces os.Exit.
func WithExit(fn func(int)) Option {
	return func(p *Probe) { p.exit = fn }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(p *Probe) { p.logger = l }
}

// WithMetrics registers the metrics supported by the probe.
func WithMetrics(metrics ...Metric) Option {
	return func(p *Probe) { p.Metrics.Register(metrics...) }
}

// New creates a probe. The run timestamp is captured here.
func New(name, version string, opts ...Option) *Probe {
	p := &Probe{
		Name:     name,
		Version:  version,
		Config:   config.NewProbeConfig(),
		state:    NewState(),
		hook:     NopHook{},
		stdout:   os.Stdout,
		exit:     os.Exit,
		logLevel: new(slog.LevelVar),
	}
	p.logLevel.Set(slog.LevelWarn)
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: p.logLevel}))
	}
	return p
}

// State returns the current aggregate.
func (p *Probe) State() *State {
	return p.state
}

// Finished reports whether the probe has returned its result.
func (p *Probe) Finished() bool {
	return p.finished
}

// VersionString returns the probe name and version.
func (p *Probe) VersionString() string {
	return fmt.Sprintf("Probe %s: version %s", p.Name, p.Version)
}

// SetVerbose enables debug output.
func (p *Probe) SetVerbose(verbose bool) {
	p.Config.Verbose = verbose
	if verbose {
		p.logLevel.Set(slog.LevelDebug)
	} else {
		p.logLevel.Set(slog.LevelWarn)
	}
}

// Debug writes a message to stderr when verbose output is enabled.
func (p *Probe) Debug(format string, args ...any) {
	p.logger.Debug(fmt.Sprintf(format, args...), "probe", p.Name)
}

// Add records a finding and escalates the probe status if status is at least
// as severe as the current one. It reports whether the status was updated.
// An invalid status terminates the probe as UNKNOWN.
func (p *Probe) Add(status Status, text string, exitCode int) bool {
	updated, err := p.state.Record(status, text, exitCode)
	if err != nil {
		p.Return(StatusUnknown, fmt.Sprintf("Invalid probe status: %d", int(status)), ExitUnknown)
		return false
	}
	return updated
}

// AddOK records an OK finding.
func (p *Probe) AddOK(text string) {
	p.Add(StatusOK, text, ExitCodeUnset)
}

// AddWarning records a WARNING finding.
func (p *Probe) AddWarning(text string) {
	p.Add(StatusWarning, text, ExitCodeUnset)
}

// AddCritical records a CRITICAL finding.
func (p *Probe) AddCritical(text string) {
	p.Add(StatusCritical, text, ExitCodeUnset)
}

// AddMessage adds an informational line to the details.
func (p *Probe) AddMessage(text string) {
	p.state.AddMessage(text)
}

// Return records a final finding, prints the report, runs the exit hook and
// terminates the process. Only the first call has any effect. A final status
// less severe than the current one leaves status, summary and exit code as
// they were.
func (p *Probe) Return(status Status, text string, exitCode int) {
	if p.finished {
		return
	}
	updated := p.Add(status, text, exitCode)
	if p.finished {
		// an invalid status already returned UNKNOWN
		return
	}
	if updated {
		// the summary already carries this text
		p.state.dropRecorded()
	}
	p.finished = true

	writeOutput(p.stdout, p.Config, p.Output())
	p.hook.AtExit()
	p.exit(p.ExitCode())
}

// ReturnOK terminates the probe with status OK.
func (p *Probe) ReturnOK(text string) {
	p.Return(StatusOK, text, ExitOK)
}

// ReturnWarning terminates the probe with status WARNING.
func (p *Probe) ReturnWarning(text string) {
	p.Return(StatusWarning, text, ExitProblem)
}

// ReturnCritical terminates the probe with status CRITICAL.
func (p *Probe) ReturnCritical(text string) {
	p.Return(StatusCritical, text, ExitProblem)
}

// ReturnUnknown terminates the probe with status UNKNOWN.
func (p *Probe) ReturnUnknown(text string) {
	p.Return(StatusUnknown, text, ExitUnknown)
}

// ExitCode returns the process exit code for the current state. A status set
// through AddOK, AddWarning or AddCritical carries no code of its own and
// exits with the default code for that status.
func (p *Probe) ExitCode() int {
	if p.Config.ForceCompatibleExitCode {
		if p.state.Status == StatusUnknown {
			return compatFailed
		}
		return ExitOK
	}
	if p.state.ExitCode == ExitCodeUnset {
		return defaultExitCode(p.state.Status)
	}
	return p.state.ExitCode
}

func defaultExitCode(s Status) int {
	switch s {
	case StatusOK:
		return ExitOK
	case StatusUnknown:
		return ExitUnknown
	}
	return ExitProblem
}

// Output renders the report in the configured format.
func (p *Probe) Output() string {
	if p.Config.Output == config.OutputWLCG {
		m, ok := p.Metrics.Get(p.Config.MetricName)
		if !ok {
			m = UnknownMetric
		}
		return RenderWLCG(p.state, m, p.Config)
	}
	return RenderShort(p.state, p.Config)
}
