package adb

import (
	"fmt"
	"os/exec"
	"strings"
)

// Client wraps the adb executable for a single (optionally serial-scoped) device.
type Client struct {
	path   string // Path to the adb executable.
	serial string // Serial of the device to target, or empty for the default device.
}

// NewClient creates a client for the given adb executable and device serial.
func NewClient(path string, serial string) *Client {
	if path == "" {
		path = "adb"
	}

	return &Client{path: path, serial: serial}
}

// Available checks that the adb executable can be found.
func (cl *Client) Available() error {
	_, err := exec.LookPath(cl.path)
	if err != nil {
		return fmt.Errorf("adb not found: %w", err)
	}

	return nil
}

// State returns the connection state of the device ("device", "offline", ...).
func (cl *Client) State() (string, error) {
	out, err := cl.run("get-state")
	if err != nil {
		return "", fmt.Errorf("query device state: %w", err)
	}

	return strings.TrimSpace(out), nil
}

// Connected checks that a device is attached and ready for use.
func (cl *Client) Connected() error {
	state, err := cl.State()
	if err != nil {
		return fmt.Errorf("no device connected: %w", err)
	}

	if state != "device" {
		return fmt.Errorf("device not ready [%s]", state)
	}

	return nil
}

// Getprop reads a system property from the device.
func (cl *Client) Getprop(name string) (string, error) {
	out, err := cl.run("shell", "getprop", name)
	if err != nil {
		return "", fmt.Errorf("read property [%s]: %w", name, err)
	}

	return strings.TrimSpace(out), nil
}

// Push copies a local file to the given path on the device.
func (cl *Client) Push(local string, remote string) error {
	_, err := cl.run("push", local, remote)
	if err != nil {
		return fmt.Errorf("push [%s] to [%s]: %w", local, remote, err)
	}

	return nil
}

// Shell runs a command on the device and returns its output.
func (cl *Client) Shell(args ...string) (string, error) {
	out, err := cl.run(append([]string{"shell"}, args...)...)
	if err != nil {
		return out, fmt.Errorf("run shell command: %w", err)
	}

	return out, nil
}

// ShellSu runs a command on the device with elevated privileges. The command
// is quoted so that the remote shell passes it to su as a single argument.
func (cl *Client) ShellSu(command string) (string, error) {
	out, err := cl.run("shell", fmt.Sprintf("su -c %q", command))
	if err != nil {
		return out, fmt.Errorf("run privileged shell command: %w", err)
	}

	return out, nil
}

// run invokes adb with the given arguments, scoped to the client's serial.
func (cl *Client) run(args ...string) (string, error) {
	if cl.serial != "" {
		args = append([]string{"-s", cl.serial}, args...)
	}

	out, err := exec.Command(cl.path, args...).CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("adb %s: %w [%s]", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}

	return string(out), nil
}
