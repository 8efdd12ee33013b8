package probe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/jandubois/rsvprobe/internal/config"
)

func testConfig() *config.ProbeConfig {
	return &config.ProbeConfig{
		Output:    config.OutputShort,
		Host:      "ce.example.org",
		IsLocal:   true,
		LocalHost: "rsv.example.org",
		Timestamp: "2024-05-01T12:00:00Z",
	}
}

func TestRenderShort(t *testing.T) {
	st := NewState()
	st.Record(StatusWarning, "slow", 2)
	st.AddMessage("checked")

	expected := "RSV BRIEF RESULTS:\nWARNING\nWARNING: slow\n2024-05-01T12:00:00Z\nWARNING: slow\nMSG: checked"
	if got := RenderShort(st, testConfig()); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestRenderShortEmpty(t *testing.T) {
	expected := "RSV BRIEF RESULTS:\nOK\n\n2024-05-01T12:00:00Z\n"
	if got := RenderShort(NewState(), testConfig()); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestRenderWLCG(t *testing.T) {
	m := MustMetric("OSG-CE", "org.osg.general.ping-host", MetricTypeStatus, "")

	tests := []struct {
		name     string
		setup    func(cfg *config.ProbeConfig)
		expected string
	}{
		{
			name: "local",
			expected: "metricName: org.osg.general.ping-host\n" +
				"metricType: status\n" +
				"timestamp: 2024-05-01T12:00:00Z\n" +
				"hostName: rsv.example.org\n" +
				"siteName: ce.example.org\n" +
				"metricStatus: CRITICAL\n" +
				"serviceType: OSG-CE\n" +
				"summaryData: CRITICAL: down\n" +
				"detailsData: CRITICAL: down\n" +
				"EOT\n",
		},
		{
			name: "remote with vo",
			setup: func(cfg *config.ProbeConfig) {
				cfg.IsLocal = false
				cfg.URI = "https://ce.example.org:8443/"
				cfg.VOName = "cms"
			},
			expected: "metricName: org.osg.general.ping-host\n" +
				"metricType: status\n" +
				"timestamp: 2024-05-01T12:00:00Z\n" +
				"serviceURI: https://ce.example.org:8443/\n" +
				"gatheredAt: rsv.example.org\n" +
				"siteName: ce.example.org\n" +
				"voName: cms\n" +
				"metricStatus: CRITICAL\n" +
				"serviceType: OSG-CE\n" +
				"summaryData: CRITICAL: down\n" +
				"detailsData: CRITICAL: down\n" +
				"EOT\n",
		},
		{
			name:  "no site name",
			setup: func(cfg *config.ProbeConfig) { cfg.Host = "" },
			expected: "metricName: org.osg.general.ping-host\n" +
				"metricType: status\n" +
				"timestamp: 2024-05-01T12:00:00Z\n" +
				"hostName: rsv.example.org\n" +
				"metricStatus: CRITICAL\n" +
				"serviceType: OSG-CE\n" +
				"summaryData: CRITICAL: down\n" +
				"detailsData: CRITICAL: down\n" +
				"EOT\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			st := NewState()
			st.Record(StatusCritical, "down", 2)
			if got := RenderWLCG(st, m, cfg); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderWLCGTruncation(t *testing.T) {
	st := NewState()
	st.AddMessage(strings.Repeat("x", 100))
	cfg := testConfig()
	cfg.DetailsMaxLength = 20

	out := RenderWLCG(st, UnknownMetric, cfg)
	expected := "detailsData: MSG: " + strings.Repeat("x", 15) + truncatedMarker + "\nEOT\n"
	if !strings.HasSuffix(out, expected) {
		t.Errorf("expected suffix %q, got %q", expected, out)
	}
}

func TestTruncateDetails(t *testing.T) {
	tests := []struct {
		details  string
		maxLen   int
		expected string
	}{
		{"short", 0, "short"},
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"longer than ten", 10, "longer tha" + truncatedMarker},
	}
	for _, tt := range tests {
		if got := truncateDetails(tt.details, tt.maxLen); got != tt.expected {
			t.Errorf("truncateDetails(%q, %d): expected %q, got %q", tt.details, tt.maxLen, tt.expected, got)
		}
	}
}

func TestWriteOutputStdout(t *testing.T) {
	var b strings.Builder
	writeOutput(&b, testConfig(), "report")
	if b.String() != "report\n" {
		t.Errorf("expected %q, got %q", "report\n", b.String())
	}
}

func TestWriteOutputFile(t *testing.T) {
	var b strings.Builder
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "out.txt")

	writeOutput(&b, cfg, "report")
	if b.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", b.String())
	}
	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "report" {
		t.Errorf("expected %q, got %q", "report", string(data))
	}
}

func TestWriteOutputFileFailure(t *testing.T) {
	var b strings.Builder
	cfg := testConfig()
	cfg.OutputFile = filepath.Join(t.TempDir(), "missing", "out.txt")

	writeOutput(&b, cfg, "report")
	expected := "UNKNOWN: Unable to open output file: " + cfg.OutputFile + "\n"
	if b.String() != expected {
		t.Errorf("expected %q, got %q", expected, b.String())
	}
}

func TestTruncateDetailsRuneBoundary(t *testing.T) {
	// "é" is two bytes; a cut at 2 would split it
	got := truncateDetails("aéb", 2)
	if got != "a"+truncatedMarker {
		t.Errorf("expected %q, got %q", "a"+truncatedMarker, got)
	}
	if !utf8.ValidString(truncateDetails(strings.Repeat("ü", 50), 33)) {
		t.Error("truncated details are not valid UTF-8")
	}
}
