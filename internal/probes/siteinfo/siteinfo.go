// Package siteinfo provides the site-info probe. It reports how the local
// OSG site is configured.
package siteinfo

import (
	"fmt"

	"github.com/jandubois/rsvprobe/internal/config"
	"github.com/jandubois/rsvprobe/internal/fsutil"
	"github.com/jandubois/rsvprobe/internal/probe"
)

// Name is the probe subcommand name.
const Name = "site-info"

// Version of the probe.
const Version = "1.0.0"

// Metric is the only metric reported by this probe.
var Metric = probe.MustMetric("OSG-Local-Monitor", "org.osg.general.site-info", probe.MetricTypeStatus, "")

var caExtensions = []string{".0", ".pem"}

// Metrics returns the metrics supported by the probe.
func Metrics() []probe.Metric {
	return []probe.Metric{Metric}
}

// Run reads the Site Information section of the OSG configuration.
func Run(p *probe.Probe) {
	cfg, err := config.LoadOSG()
	if err != nil {
		p.ReturnUnknown(fmt.Sprintf("Unable to read OSG configuration: %v", err))
		return
	}

	gridType := config.GridTypeString(cfg.GridType())
	p.AddMessage("Grid type: " + gridType)

	resource, ok := cfg.Value("resource", config.SiteSection)
	if !ok || resource == "" {
		p.AddWarning("resource is not set in " + config.SiteSection)
	}
	if group, ok := cfg.Value("group", config.SiteSection); !ok || group == "" {
		p.AddWarning("group is not set in " + config.SiteSection)
	}
	if rg, ok := cfg.Value("resource_group", config.SiteSection); ok && rg != "" {
		p.AddMessage("Resource group: " + rg)
	}

	caDir := fsutil.CADir()
	p.AddMessage("CA directory: " + caDir)
	certs, err := fsutil.ListDirectory(caDir, caExtensions)
	switch {
	case err != nil:
		p.AddWarning(fmt.Sprintf("Unable to list CA directory: %v", err))
	case len(certs) == 0:
		p.AddWarning("No CA certificates in " + caDir)
	default:
		p.Debug("%d CA certificates in %s", len(certs), caDir)
	}
	p.AddMessage("Temp directory: " + fsutil.TempDir())

	if p.State().Status == probe.StatusWarning {
		p.ReturnWarning(fmt.Sprintf("Incomplete configuration for %s resource %s", gridType, resource))
		return
	}
	p.ReturnOK(fmt.Sprintf("%s resource %s", gridType, resource))
}
