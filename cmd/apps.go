package cmd

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/crissyfield/atropos/internal/bypass"
)

// CmdApps defines the 'apps' command.
var CmdApps = &cobra.Command{
	Use:   "apps [flags]",
	Short: "List applications installed on the device",
	Args:  cobra.NoArgs,
	Run:   runApps,
}

// Initialize command options
func init() {
}

// runApps is called when the 'apps' sub-command is used.
func runApps(_ *cobra.Command, _ []string) {
	// Find the Frida device
	device, err := bypass.FindDevice()
	if err != nil {
		slog.Error("Failed to find device", slog.Any("error", err))
		os.Exit(1)
	}

	// List applications
	apps, err := device.ListApplications()
	if err != nil {
		slog.Error("Failed to list applications", slog.Any("error", err))
		os.Exit(1)
	}

	data := pterm.TableData{{"Identifier", "Name", "Version", "Build", "PID"}}

	for _, app := range apps {
		pid := ""
		if app.PID != 0 {
			pid = strconv.Itoa(app.PID)
		}

		data = append(data, []string{app.Identifier, app.Name, app.Version, app.Build, pid})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
