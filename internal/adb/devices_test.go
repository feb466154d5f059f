package adb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseDevices verifies parsing of the bridge's device list output.
func TestParseDevices(t *testing.T) {
	out := "List of devices attached\n" +
		"emulator-5554          device product:sdk_gphone64_arm64 model:sdk_gphone64_arm64 device:emu64a transport_id:1\n" +
		"R5CT20ABCDE            unauthorized usb:1-2 transport_id:2\n" +
		"\n"

	devices := parseDevices(out)
	require.Len(t, devices, 2)

	assert.Equal(t, "emulator-5554", devices[0].Serial)
	assert.Equal(t, "device", devices[0].State)
	assert.Equal(t, "sdk_gphone64_arm64", devices[0].Model)

	assert.Equal(t, "R5CT20ABCDE", devices[1].Serial)
	assert.Equal(t, "unauthorized", devices[1].State)
	assert.Equal(t, "", devices[1].Model)
}

// TestParseDevicesEmpty verifies that an empty device list parses to nothing.
func TestParseDevicesEmpty(t *testing.T) {
	devices := parseDevices("List of devices attached\n\n")

	assert.Empty(t, devices)
}

// TestParseDevicesDaemonNoise verifies that daemon startup lines are skipped.
func TestParseDevicesDaemonNoise(t *testing.T) {
	out := "* daemon not running; starting now at tcp:5037\n" +
		"* daemon started successfully\n" +
		"List of devices attached\n" +
		"emulator-5554          device\n"

	devices := parseDevices(out)
	require.Len(t, devices, 1)
	assert.Equal(t, "emulator-5554", devices[0].Serial)
}
