// Package diskspace provides the disk-space probe implementation.
package diskspace

import (
	"fmt"
	"syscall"

	units "github.com/docker/go-units"
	"github.com/jandubois/rsvprobe/internal/probe"
)

// Name is the probe subcommand name.
const Name = "disk-space"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Local-Monitor", "org.osg.local.disk-space", probe.MetricTypeStatus, "")

// Free space within this factor of a threshold raises a warning.
const warnMargin = 1.1

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run checks the free space on path against the thresholds. A threshold of 0
// is disabled.
func Run(p *probe.Probe, path string, minFreeGB, minFreePercent float64) {
	if path == "" {
		p.ReturnUnknown("path argument is required")
		return
	}

	var stat syscall.Statfs_t
	if err := syscall.Statfs(path, &stat); err != nil {
		p.ReturnUnknown(fmt.Sprintf("failed to stat %s: %v", path, err))
		return
	}

	freeBytes := stat.Bavail * uint64(stat.Bsize)
	totalBytes := stat.Blocks * uint64(stat.Bsize)
	freeGB := float64(freeBytes) / (1024 * 1024 * 1024)
	var freePercent float64
	if totalBytes > 0 {
		freePercent = float64(freeBytes) / float64(totalBytes) * 100
	}
	p.Debug("statfs %s: bavail=%d blocks=%d bsize=%d", path, stat.Bavail, stat.Blocks, stat.Bsize)

	message := fmt.Sprintf("%s free of %s on %s (%.1f%%)",
		units.HumanSize(float64(freeBytes)), units.HumanSize(float64(totalBytes)), path, freePercent)
	p.AddMessage(message)

	if minFreeGB > 0 {
		switch {
		case freeGB < minFreeGB:
			p.AddCritical(fmt.Sprintf("%s free < %.0f GB minimum", units.HumanSize(float64(freeBytes)), minFreeGB))
		case freeGB < minFreeGB*warnMargin:
			p.AddWarning(fmt.Sprintf("%s free is close to the %.0f GB minimum", units.HumanSize(float64(freeBytes)), minFreeGB))
		}
	}

	if minFreePercent > 0 {
		switch {
		case freePercent < minFreePercent:
			p.AddCritical(fmt.Sprintf("%.1f%% free < %.1f%% minimum", freePercent, minFreePercent))
		case freePercent < minFreePercent*warnMargin:
			p.AddWarning(fmt.Sprintf("%.1f%% free is close to the %.1f%% minimum", freePercent, minFreePercent))
		}
	}

	switch p.State().Status {
	case probe.StatusCritical:
		p.ReturnCritical(fmt.Sprintf("Low disk space on %s", path))
	case probe.StatusWarning:
		p.ReturnWarning(fmt.Sprintf("Disk space on %s is getting low", path))
	default:
		p.ReturnOK(message)
	}
}
