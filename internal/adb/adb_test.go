package adb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeADB writes a stand-in adb executable with the given body and returns its path.
func fakeADB(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "adb")

	err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755)
	require.NoError(t, err)

	return path
}

// TestConnected verifies that only a device in the "device" state passes the gate.
func TestConnected(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		connected bool
	}{
		{"Device", `echo "device"`, true},
		{"Offline", `echo "offline"`, false},
		{"Unauthorized", `echo "unauthorized"`, false},
		{"NoDevice", `echo "error: no devices/emulators found" >&2; exit 1`, false},
		{"EmptyOutput", `exit 0`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(fakeADB(t, tt.body), "")

			err := client.Connected()
			if tt.connected {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// TestStateSerial verifies that the client scopes commands to its serial.
func TestStateSerial(t *testing.T) {
	client := NewClient(fakeADB(t, `echo "$@"`), "emulator-5554")

	state, err := client.State()
	require.NoError(t, err)
	assert.Equal(t, "-s emulator-5554 get-state", state)
}
