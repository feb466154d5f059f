package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crissyfield/atropos/cmd"
)

// CmdRoot defines the root command.
var CmdRoot = &cobra.Command{
	Use:   "atropos",
	Short: "Automate SSL pinning bypass on a connected Android device",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// Adjust log level
		if viper.GetBool("verbose") {
			pterm.DefaultLogger.Level = pterm.LogLevelDebug
		}
	},
}

// Initialize command options
func init() {
	// Persistent flags
	CmdRoot.PersistentFlags().BoolP("verbose", "v", false, "output debug information")
	CmdRoot.PersistentFlags().String("adb", "adb", "path to the adb executable")
	CmdRoot.PersistentFlags().String("serial", "", "serial of the device to target")

	_ = viper.BindPFlag("verbose", CmdRoot.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("adb", CmdRoot.PersistentFlags().Lookup("adb"))
	_ = viper.BindPFlag("serial", CmdRoot.PersistentFlags().Lookup("serial"))

	// Environment
	viper.SetEnvPrefix("atropos")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register sub-commands
	CmdRoot.AddCommand(cmd.CmdRun)
	CmdRoot.AddCommand(cmd.CmdServer)
	CmdRoot.AddCommand(cmd.CmdDevices)
	CmdRoot.AddCommand(cmd.CmdApps)
}

// main is the main entry point of the application.
func main() {
	// Route structured logging through pterm
	slog.SetDefault(slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger)))

	// Execute root command
	if err := CmdRoot.Execute(); err != nil {
		os.Exit(1)
	}
}
