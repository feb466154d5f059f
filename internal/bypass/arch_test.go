package bypass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseArchitecture verifies that every known ABI resolves to the correct
// architecture and asset tag.
func TestParseArchitecture(t *testing.T) {
	tests := []struct {
		abi      string
		arch     Architecture
		assetTag string
	}{
		{"arm64-v8a", ArchARM64, "android-arm64"},
		{"armeabi-v7a", ArchARM, "android-arm"},
		{"x86", ArchX86, "android-x86"},
		{"x86_64", ArchX86_64, "android-x86_64"},
		{"  arm64-v8a\n", ArchARM64, "android-arm64"},
	}

	for _, tt := range tests {
		t.Run(tt.abi, func(t *testing.T) {
			arch, err := ParseArchitecture(tt.abi)

			require.NoError(t, err)
			assert.Equal(t, tt.arch, arch)
			assert.Equal(t, tt.assetTag, arch.AssetTag())
		})
	}
}

// TestParseArchitectureUnknown verifies that unknown ABIs are rejected.
func TestParseArchitectureUnknown(t *testing.T) {
	for _, abi := range []string{"", "mips", "riscv64", "arm64"} {
		t.Run(abi, func(t *testing.T) {
			_, err := ParseArchitecture(abi)

			assert.Error(t, err)
		})
	}
}
