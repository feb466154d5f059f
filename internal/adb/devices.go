package adb

import (
	"fmt"
	"strings"
)

// Device represents an entry of the bridge's device list.
type Device struct {
	Serial string // Serial is the unique identifier of the device.
	State  string // State can be "device", "offline", or "unauthorized".
	Model  string // Model is the device model, if reported.
}

// Devices returns all devices currently known to the bridge.
func (cl *Client) Devices() ([]*Device, error) {
	out, err := cl.run("devices", "-l")
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	return parseDevices(out), nil
}

// Info describes the identity of the connected device.
type Info struct {
	Manufacturer string // Manufacturer of the device.
	Model        string // Model name of the device.
	Release      string // Android release version.
}

// Info reads the identity of the connected device from its system properties.
func (cl *Client) Info() (*Info, error) {
	manufacturer, err := cl.Getprop("ro.product.manufacturer")
	if err != nil {
		return nil, err
	}

	model, err := cl.Getprop("ro.product.model")
	if err != nil {
		return nil, err
	}

	release, err := cl.Getprop("ro.build.version.release")
	if err != nil {
		return nil, err
	}

	return &Info{Manufacturer: manufacturer, Model: model, Release: release}, nil
}

// parseDevices parses the output of "adb devices -l".
func parseDevices(out string) []*Device {
	var devices []*Device

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)

		// Skip the header and empty lines
		if (line == "") || strings.HasPrefix(line, "List of devices") || strings.HasPrefix(line, "*") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		device := &Device{Serial: fields[0], State: fields[1]}

		// Trailing fields are "key:value" pairs
		for _, field := range fields[2:] {
			if model, ok := strings.CutPrefix(field, "model:"); ok {
				device.Model = model
			}
		}

		devices = append(devices, device)
	}

	return devices
}
