package probe

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jandubois/rsvprobe/internal/config"
)

const (
	shortHeader     = "RSV BRIEF RESULTS:"
	truncatedMarker = "\n... Truncated ...\nFor more details, use --verbose"
)

// RenderShort formats the state in the RSV brief format.
func RenderShort(st *State, cfg *config.ProbeConfig) string {
	var b strings.Builder
	b.WriteString(shortHeader + "\n")
	b.WriteString(st.Status.String() + "\n")
	b.WriteString(st.Summary + "\n")
	b.WriteString(cfg.Timestamp + "\n")
	b.WriteString(strings.Join(st.Details(), "\n"))
	return b.String()
}

// RenderWLCG formats the state as a WLCG metric record terminated by EOT.
// detailsData is always the last field: consumers read everything up to EOT
// as its value.
func RenderWLCG(st *State, m Metric, cfg *config.ProbeConfig) string {
	var b strings.Builder
	field := func(key, value string) {
		fmt.Fprintf(&b, "%s: %s\n", key, value)
	}

	field("metricName", m.Name)
	field("metricType", string(m.Type))
	field("timestamp", cfg.Timestamp)
	if cfg.IsLocal {
		field("hostName", cfg.LocalHost)
	} else {
		field("serviceURI", cfg.URI)
		field("gatheredAt", cfg.LocalHost)
	}
	if cfg.Host != "" {
		field("siteName", cfg.Host)
	}
	if cfg.VOName != "" {
		field("voName", cfg.VOName)
	}
	field("metricStatus", st.Status.String())
	field("serviceType", m.ServiceType)
	field("summaryData", st.Summary)
	field("detailsData", truncateDetails(strings.Join(st.Details(), "\n"), cfg.DetailsMaxLength))
	b.WriteString("EOT\n")
	return b.String()
}

func truncateDetails(details string, maxLen int) string {
	if maxLen <= 0 || len(details) <= maxLen {
		return details
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(details[cut]) {
		cut--
	}
	return details[:cut] + truncatedMarker
}

// writeOutput sends the report to the configured output file, or to stdout.
// A file that cannot be written is reported on stdout; the probe result is
// not affected.
func writeOutput(stdout io.Writer, cfg *config.ProbeConfig, text string) {
	if cfg.OutputFile == "" {
		fmt.Fprintln(stdout, text)
		return
	}
	if err := os.WriteFile(cfg.OutputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(stdout, "UNKNOWN: Unable to open output file: %s\n", cfg.OutputFile)
	}
}
