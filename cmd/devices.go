package cmd

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crissyfield/atropos/internal/adb"
	"github.com/crissyfield/atropos/internal/bypass"
)

// CmdDevices defines the 'devices' command.
var CmdDevices = &cobra.Command{
	Use:   "devices [flags]",
	Short: "List devices known to the bridge and to Frida",
	Args:  cobra.NoArgs,
	Run:   runDevices,
}

// Initialize command options
func init() {
}

// runDevices is called when the 'devices' sub-command is used.
func runDevices(_ *cobra.Command, _ []string) {
	// List bridge devices
	client := adb.NewClient(viper.GetString("adb"), viper.GetString("serial"))

	if err := client.Available(); err != nil {
		slog.Error("Device bridge unavailable", slog.Any("error", err))
		os.Exit(1)
	}

	bridgeDevices, err := client.Devices()
	if err != nil {
		slog.Error("Failed to list bridge devices", slog.Any("error", err))
		os.Exit(1)
	}

	bridgeData := pterm.TableData{{"Serial", "State", "Model"}}
	for _, dev := range bridgeDevices {
		bridgeData = append(bridgeData, []string{dev.Serial, dev.State, dev.Model})
	}

	pterm.DefaultSection.Println("Bridge devices")
	_ = pterm.DefaultTable.WithHasHeader().WithData(bridgeData).Render()

	// List Frida devices
	fridaDevices, err := bypass.ListDevices()
	if err != nil {
		slog.Error("Failed to list Frida devices", slog.Any("error", err))
		os.Exit(1)
	}

	fridaData := pterm.TableData{{"ID", "Type", "Name"}}
	for _, dev := range fridaDevices {
		fridaData = append(fridaData, []string{dev.ID, dev.Type(), dev.Name})
	}

	pterm.DefaultSection.Println("Frida devices")
	_ = pterm.DefaultTable.WithHasHeader().WithData(fridaData).Render()
}
