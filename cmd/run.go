package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/caarlos0/ctrlc"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/crissyfield/atropos/internal/adb"
	"github.com/crissyfield/atropos/internal/bypass"
)

// CmdRun defines the 'run' command.
var CmdRun = &cobra.Command{
	Use:   "run [flags]",
	Short: "Run the full SSL pinning bypass sequence",
	Args:  cobra.NoArgs,
	Run:   runRun,
}

// Initialize command options
func init() {
	CmdRun.Flags().StringP("app", "a", "com.facebook.katana", "identifier of the target application")
	CmdRun.Flags().String("script", "./ssl-pinning.js", "path to the instrumentation script")
	CmdRun.Flags().Bool("attach", false, "attach to a running instance instead of spawning")
	CmdRun.Flags().Bool("no-mirror", false, "do not launch a screen mirroring session")
	CmdRun.Flags().String("frida-version", bypass.DefaultServerVersion, "frida-server version to install")

	_ = viper.BindPFlag("run.app", CmdRun.Flags().Lookup("app"))
	_ = viper.BindPFlag("run.script", CmdRun.Flags().Lookup("script"))
	_ = viper.BindPFlag("run.attach", CmdRun.Flags().Lookup("attach"))
	_ = viper.BindPFlag("run.no-mirror", CmdRun.Flags().Lookup("no-mirror"))
	_ = viper.BindPFlag("run.frida-version", CmdRun.Flags().Lookup("frida-version"))
}

// runRun is called when the 'run' sub-command is used.
func runRun(_ *cobra.Command, _ []string) {
	pterm.DefaultHeader.Println("Atropos")

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

	info, err := client.Info()
	if err != nil {
		slog.Error("Failed to read device identity", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("Device connected",
		slog.String("manufacturer", info.Manufacturer),
		slog.String("model", info.Model),
		slog.String("release", info.Release),
	)

	// Mirror the device screen
	if !viper.GetBool("run.no-mirror") {
		if err := bypass.StartMirror(viper.GetString("serial")); err != nil {
			slog.Warn("Failed to launch screen mirroring", slog.Any("error", err))
		} else {
			slog.Info("Screen mirroring started")
		}
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

	slog.Info("Device architecture", slog.String("abi", arch.String()))

	// Provision and start frida-server
	server := bypass.NewServer(client, viper.GetString("run.frida-version"))

	if err := server.Ensure(arch); err != nil {
		slog.Error("Failed to install server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := server.Start(); err != nil {
		slog.Error("Failed to start server", slog.Any("error", err))
		os.Exit(1)
	}

	// Find the Frida device
	device, err := bypass.FindDevice()
	if err != nil {
		slog.Error("Failed to find device", slog.Any("error", err))
		os.Exit(1)
	}

	if device.OS != "android" {
		slog.Error("Android device required", slog.String("os", device.OS))
		os.Exit(1)
	}

	// Read the instrumentation script
	content, err := os.ReadFile(viper.GetString("run.script"))
	if err != nil {
		slog.Error("Failed to read instrumentation script", slog.Any("error", err))
		os.Exit(1)
	}

	// Load the script into the target application
	app := viper.GetString("run.app")

	var script *bypass.Script

	if viper.GetBool("run.attach") {
		pid, err := device.GetProcessID(app)
		if err != nil {
			slog.Error("Target application not running", slog.Any("error", err))
			os.Exit(1)
		}

		slog.Info("Attaching to process", slog.String("app", app), slog.Int("pid", pid))

		script, err = device.LoadScriptIntoProcess(string(content), pid)
		if err != nil {
			slog.Error("Failed to load script", slog.Any("error", err))
			os.Exit(1)
		}
	} else {
		slog.Info("Spawning application", slog.String("app", app))

		script, err = device.SpawnWithScript(app, string(content))
		if err != nil {
			slog.Error("Failed to spawn application", slog.Any("error", err))
			os.Exit(1)
		}
	}

	defer script.Close()

	slog.Info("Script loaded and running, press Ctrl-C to stop")

	// Wait for Ctrl-C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ctrlc.Default.Run(ctx, func() error {
		s := bufio.NewScanner(os.Stdin)
		for s.Scan() {
		}
		return nil
	}); err != nil {
		slog.Warn("Detaching session")
	}
}
