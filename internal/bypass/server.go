package bypass

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"

	"github.com/crissyfield/atropos/internal/adb"
)

const (
	// DefaultServerVersion is the frida-server version installed by default.
	DefaultServerVersion = "16.5.9"

	// remoteServerPath is where frida-server lives on the device.
	remoteServerPath = "/data/local/tmp/frida-server"
)

// Server manages the frida-server binary on the device.
type Server struct {
	client  *adb.Client // Device bridge client.
	version string      // Wanted frida-server version.
}

// NewServer creates a server manager for the given device bridge client.
func NewServer(client *adb.Client, version string) *Server {
	if version == "" {
		version = DefaultServerVersion
	}

	return &Server{client: client, version: version}
}

// Ensure makes sure a frida-server binary of the wanted version is installed
// on the device, downloading and pushing one if necessary.
func (srv *Server) Ensure(arch Architecture) error {
	// Keep the installed server if it is recent enough
	if ok, err := srv.installedIsCurrent(); err == nil && ok {
		slog.Info("Server already installed", slog.String("version", srv.version))
		return nil
	}

	// Download matching server binary
	slog.Info("Downloading server", slog.String("version", srv.version), slog.String("arch", arch.String()))

	path, err := downloadServer(srv.version, arch)
	if err != nil {
		return fmt.Errorf("download server: %w", err)
	}

	defer os.RemoveAll(filepath.Dir(path)) //nolint

	// Make sure the binary fits the device
	info, err := parseELF(path)
	if err != nil {
		return fmt.Errorf("inspect server binary: %w", err)
	}

	if !info.Matches(arch) {
		return fmt.Errorf("server binary does not match device architecture [%s]", arch)
	}

	// Push to device and make executable
	slog.Info("Pushing server to device", slog.String("path", remoteServerPath))

	if err := srv.client.Push(path, remoteServerPath); err != nil {
		return fmt.Errorf("push server binary: %w", err)
	}

	if _, err := srv.client.ShellSu("chmod 755 " + remoteServerPath); err != nil {
		return fmt.Errorf("set server permissions: %w", err)
	}

	return nil
}

// Start kills any stale server process and starts the server as a daemon.
func (srv *Server) Start() error {
	// Kill stale server, if any
	_, _ = srv.client.ShellSu("pkill -9 frida-server")
	time.Sleep(1 * time.Second)

	// Start server as daemon
	_, err := srv.client.ShellSu(remoteServerPath + " -D")
	if err != nil {
		return fmt.Errorf("start server: %w", err)
	}

	slog.Info("Server is running")
	return nil
}

// installedIsCurrent reports whether a server binary of at least the wanted
// version is already installed on the device.
func (srv *Server) installedIsCurrent() (bool, error) {
	// Check for installed binary
	if _, err := srv.client.Shell("ls", remoteServerPath); err != nil {
		return false, fmt.Errorf("server binary not installed: %w", err)
	}

	// Query installed version
	out, err := srv.client.Shell(remoteServerPath, "--version")
	if err != nil {
		return false, fmt.Errorf("query server version: %w", err)
	}

	return versionIsCurrent(strings.TrimSpace(out), srv.version)
}

// versionIsCurrent reports whether the installed version satisfies the wanted version.
func versionIsCurrent(installed string, wanted string) (bool, error) {
	installedVersion, err := goversion.NewVersion(installed)
	if err != nil {
		return false, fmt.Errorf("parse installed version [%s]: %w", installed, err)
	}

	wantedVersion, err := goversion.NewVersion(wanted)
	if err != nil {
		return false, fmt.Errorf("parse wanted version [%s]: %w", wanted, err)
	}

	return installedVersion.GreaterThanOrEqual(wantedVersion), nil
}
