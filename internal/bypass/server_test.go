package bypass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVersionIsCurrent verifies the comparison of installed and wanted versions.
func TestVersionIsCurrent(t *testing.T) {
	tests := []struct {
		name      string
		installed string
		wanted    string
		current   bool
	}{
		{"Equal", "16.5.9", "16.5.9", true},
		{"Newer", "17.0.1", "16.5.9", true},
		{"Older", "16.5.8", "16.5.9", false},
		{"OlderMajor", "15.2.2", "16.5.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current, err := versionIsCurrent(tt.installed, tt.wanted)

			require.NoError(t, err)
			assert.Equal(t, tt.current, current)
		})
	}
}

// TestVersionIsCurrentInvalid verifies that garbage version output is rejected.
func TestVersionIsCurrentInvalid(t *testing.T) {
	_, err := versionIsCurrent("/system/bin/sh: frida-server: not found", "16.5.9")

	assert.Error(t, err)
}
