package cmd

import (
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X github.com/jandubois/rsvprobe/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "rsvprobe",
	Short: "RSV probes for grid service monitoring",
	Long: `rsvprobe bundles probes that follow the WLCG Grid Monitoring Probe
specification. Each probe prints a short or WLCG report and exits with a
status-synchronized code.`,
}

const probeGroupID = "probes"

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: probeGroupID, Title: "Built-in Probes:"})
}
