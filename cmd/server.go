package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crissyfield/atropos/internal/adb"
	"github.com/crissyfield/atropos/internal/bypass"
)

// CmdServer defines the 'server' command.
var CmdServer = &cobra.Command{
	Use:   "server [flags]",
	Short: "Provision and start frida-server on the device",
	Args:  cobra.NoArgs,
	Run:   runServer,
}

// Initialize command options
func init() {
	CmdServer.Flags().String("frida-version", bypass.DefaultServerVersion, "frida-server version to install")

	_ = viper.BindPFlag("server.frida-version", CmdServer.Flags().Lookup("frida-version"))
}

// runServer is called when the 'server' sub-command is used.
func runServer(_ *cobra.Command, _ []string) {
	// Ensure the device bridge is usable
	client := adb.NewClient(viper.GetString("adb"), viper.GetString("serial"))

	if err := client.Available(); err != nil {
		slog.Error("Device bridge unavailable", slog.Any("error", err))
		os.Exit(1)
	}

	if err := client.Connected(); err != nil {
		slog.Error("No device connected", slog.Any("error", err))
		os.Exit(1)
	}

	// Resolve the device architecture
	abi, err := client.Getprop("ro.product.cpu.abi")
	if err != nil {
		slog.Error("Failed to determine device architecture", slog.Any("error", err))
		os.Exit(1)
	}

	arch, err := bypass.ParseArchitecture(abi)
	if err != nil {
		slog.Error("Unsupported device architecture", slog.Any("error", err))
		os.Exit(1)
	}

	// Provision and start frida-server
	server := bypass.NewServer(client, viper.GetString("server.frida-version"))

	if err := server.Ensure(arch); err != nil {
		slog.Error("Failed to install server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := server.Start(); err != nil {
		slog.Error("Failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}
