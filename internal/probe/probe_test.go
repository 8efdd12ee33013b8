package probe_test

import (
	"strings"
	"testing"

	"github.com/jandubois/rsvprobe/internal/probe"
	"github.com/jandubois/rsvprobe/internal/probe/probetest"
)

const testTimestamp = "2024-05-01T12:00:00Z"

func newProbe(t *testing.T, opts ...probe.Option) (*probe.Probe, *probetest.Capture) {
	t.Helper()
	p, c := probetest.New("org.osg.test", opts...)
	p.Config.Timestamp = testTimestamp
	return p, c
}

func TestReturnOKAfterBaseline(t *testing.T) {
	p, c := newProbe(t)
	p.Add(probe.StatusOK, "baseline", 0)
	p.Return(probe.StatusOK, "all good", 0)

	expected := "RSV BRIEF RESULTS:\nOK\nOK: all good\n" + testTimestamp + "\nOK: baseline\n"
	if c.Stdout.String() != expected {
		t.Errorf("expected %q, got %q", expected, c.Stdout.String())
	}
	if !c.Exited || c.ExitCode != 0 {
		t.Errorf("expected exit 0, got exited=%v code=%d", c.Exited, c.ExitCode)
	}
}

func TestReturnDoesNotDeescalate(t *testing.T) {
	p, c := newProbe(t)
	p.Add(probe.StatusWarning, "slow", 10)
	p.Add(probe.StatusCritical, "down", 20)
	p.Return(probe.StatusWarning, "recovered", 5)

	st := p.State()
	if st.Status != probe.StatusCritical {
		t.Errorf("expected status CRITICAL, got %q", st.Status)
	}
	if st.Summary != "CRITICAL: down" {
		t.Errorf("expected summary %q, got %q", "CRITICAL: down", st.Summary)
	}
	if c.ExitCode != 20 {
		t.Errorf("expected exit code 20, got %d", c.ExitCode)
	}
	details := st.Details()
	if details[len(details)-1] != "WARNING: recovered" {
		t.Errorf("expected the final text in the details, got %v", details)
	}
}

func TestReturnDropsOnlyTheFinalFinding(t *testing.T) {
	p, c := newProbe(t)
	p.AddCritical("down")
	p.ReturnUnknown("lost connection")

	expected := []string{
		"CRITICAL: down",
		"UNKNOWN: bad probe. Status UNKNOWN should never happen after the probe has been evaluated and returned CRITICAL/WARNING",
	}
	details := p.State().Details()
	if len(details) != len(expected) {
		t.Fatalf("expected %d details, got %v", len(expected), details)
	}
	for i := range expected {
		if details[i] != expected[i] {
			t.Errorf("detail %d: expected %q, got %q", i, expected[i], details[i])
		}
	}
	if p.State().Summary != "UNKNOWN: lost connection" {
		t.Errorf("unexpected summary %q", p.State().Summary)
	}
	if c.ExitCode != probe.ExitUnknown {
		t.Errorf("expected exit code %d, got %d", probe.ExitUnknown, c.ExitCode)
	}
}

func TestReturnHelpersExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		ret      func(p *probe.Probe)
		expected int
	}{
		{"ok", func(p *probe.Probe) { p.ReturnOK("fine") }, 0},
		{"warning", func(p *probe.Probe) { p.ReturnWarning("slow") }, 2},
		{"critical", func(p *probe.Probe) { p.ReturnCritical("down") }, 2},
		{"unknown", func(p *probe.Probe) { p.ReturnUnknown("lost") }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := newProbe(t)
			tt.ret(p)
			if c.ExitCode != tt.expected {
				t.Errorf("expected exit code %d, got %d", tt.expected, c.ExitCode)
			}
		})
	}
}

func TestCompatibleExitCode(t *testing.T) {
	tests := []struct {
		name     string
		ret      func(p *probe.Probe)
		expected int
	}{
		{"ok", func(p *probe.Probe) { p.ReturnOK("fine") }, 0},
		{"warning", func(p *probe.Probe) { p.Return(probe.StatusWarning, "slow", 7) }, 0},
		{"critical", func(p *probe.Probe) { p.ReturnCritical("down") }, 0},
		{"unknown", func(p *probe.Probe) { p.Return(probe.StatusUnknown, "lost", 9) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := newProbe(t)
			p.Config.ForceCompatibleExitCode = true
			tt.ret(p)
			if c.ExitCode != tt.expected {
				t.Errorf("expected exit code %d, got %d", tt.expected, c.ExitCode)
			}
		})
	}
}

func TestReturnOnlyOnce(t *testing.T) {
	p, c := newProbe(t)
	p.ReturnWarning("slow")
	out := c.Stdout.String()
	p.ReturnCritical("down")

	if c.Stdout.String() != out {
		t.Errorf("second Return wrote output: %q", c.Stdout.String())
	}
	if p.State().Status != probe.StatusWarning {
		t.Errorf("second Return changed the status to %q", p.State().Status)
	}
	if !p.Finished() {
		t.Error("expected the probe to be finished")
	}
}

func TestHookRunsAfterOutput(t *testing.T) {
	var c *probetest.Capture
	var seen string
	calls := 0
	hook := probe.HookFunc(func() {
		calls++
		seen = c.Stdout.String()
		if c.Exited {
			t.Error("hook ran after exit")
		}
	})
	p, capture := newProbe(t, probe.WithHook(hook))
	c = capture
	p.ReturnOK("fine")

	if calls != 1 {
		t.Errorf("expected the hook to run once, ran %d times", calls)
	}
	if !strings.Contains(seen, "OK: fine") {
		t.Errorf("expected the report to be written before the hook, saw %q", seen)
	}
}

func TestAddInvalidStatus(t *testing.T) {
	p, c := newProbe(t)
	if p.Add(probe.Status(42), "bogus", 0) {
		t.Error("invalid status should not update")
	}
	if !p.Finished() {
		t.Fatal("expected an invalid status to finish the probe")
	}
	if p.State().Summary != "UNKNOWN: Invalid probe status: 42" {
		t.Errorf("unexpected summary %q", p.State().Summary)
	}
	if c.ExitCode != probe.ExitUnknown {
		t.Errorf("expected exit code %d, got %d", probe.ExitUnknown, c.ExitCode)
	}
}

func TestOutputWLCGUnknownMetric(t *testing.T) {
	p, c := newProbe(t)
	p.Config.Output = "wlcg"
	p.Config.MetricName = "org.osg.missing"
	p.ReturnOK("fine")

	out := c.Stdout.String()
	if !strings.HasPrefix(out, "metricName: UNKNOWN\nmetricType: status\n") {
		t.Errorf("expected the unknown metric, got %q", out)
	}
	if !strings.Contains(out, "serviceType: UNKNOWN\n") {
		t.Errorf("expected serviceType UNKNOWN, got %q", out)
	}
	if !strings.HasSuffix(out, "EOT\n\n") {
		t.Errorf("expected EOT terminator, got %q", out)
	}
}

func TestOutputWLCGRegisteredMetric(t *testing.T) {
	m := probe.MustMetric("OSG-CE", "org.osg.test", probe.MetricTypeStatus, "")
	p, c := newProbe(t, probe.WithMetrics(m))
	p.Config.Output = "wlcg"
	p.Config.MetricName = m.Name
	p.AddMessage("checked")
	p.ReturnOK("fine")

	out := c.Stdout.String()
	for _, want := range []string{
		"metricName: org.osg.test\n",
		"serviceType: OSG-CE\n",
		"metricStatus: OK\n",
		"summaryData: OK: fine\n",
		"detailsData: MSG: checked\nEOT\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestVersionString(t *testing.T) {
	p := probe.New("org.osg.test", "1.2.3")
	if got := p.VersionString(); got != "Probe org.osg.test: version 1.2.3" {
		t.Errorf("unexpected version string %q", got)
	}
}

func TestUnsetExitCodeUsesStatusDefault(t *testing.T) {
	tests := []struct {
		name     string
		run      func(p *probe.Probe)
		expected int
	}{
		{"warning then ok", func(p *probe.Probe) { p.AddWarning("x"); p.ReturnOK("done") }, probe.ExitProblem},
		{"critical then ok", func(p *probe.Probe) { p.AddCritical("x"); p.ReturnOK("done") }, probe.ExitProblem},
		{"ok then ok", func(p *probe.Probe) { p.AddOK("x"); p.Return(probe.StatusOK, "done", 0) }, probe.ExitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, c := newProbe(t)
			tt.run(p)
			if c.ExitCode != tt.expected {
				t.Errorf("expected exit code %d, got %d", tt.expected, c.ExitCode)
			}
		})
	}
}
