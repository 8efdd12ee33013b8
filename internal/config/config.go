package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// TimestampFormat is the ISO8601 UTC layout used in probe output.
const TimestampFormat = "2006-01-02T15:04:05Z"

// OutputMode selects the probe output format.
type OutputMode string

const (
	OutputShort OutputMode = "short"
	OutputWLCG  OutputMode = "wlcg"
)

// ParseOutputMode accepts "short" or "wlcg" in any case.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(s) {
	case string(OutputShort):
		return OutputShort, nil
	case string(OutputWLCG):
		return OutputWLCG, nil
	}
	return "", fmt.Errorf("unsupported output type %q", s)
}

// ProbeConfig holds the settings of a single probe run.
type ProbeConfig struct {
	MetricName string
	Output     OutputMode
	OutputFile string // empty means stdout

	Host      string // siteName in WLCG output
	URI       string // serviceURI for remote probes
	IsLocal   bool
	LocalHost string // hostName or gatheredAt
	VOName    string

	Timeout      time.Duration // 0 leaves timeout handling to the probe
	X509Proxy    string
	X509UserCert string
	X509UserKey  string
	Verbose      bool

	DetailsMaxLength        int  // truncate detailsData beyond this; 0 disables
	ForceCompatibleExitCode bool // exit 0 unless UNKNOWN, then 1

	Timestamp string // captured once when the config is created
}

// NewProbeConfig returns the defaults for a local probe run started now.
func NewProbeConfig() *ProbeConfig {
	localhost, err := os.Hostname()
	if err != nil {
		localhost = "localhost"
	}
	return &ProbeConfig{
		Output:    OutputShort,
		Host:      localhost,
		IsLocal:   true,
		LocalHost: localhost,
		X509Proxy: fmt.Sprintf("/tmp/x509up_u%d", os.Getuid()),
		Timestamp: time.Now().UTC().Format(TimestampFormat),
	}
}
