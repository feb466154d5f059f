package bypass

import (
	"fmt"
	"strings"
)

// Architecture identifies the processor architecture of an Android device.
type Architecture string

const (
	ArchARM64  Architecture = "arm64-v8a"   // 64-bit ARM
	ArchARM    Architecture = "armeabi-v7a" // 32-bit ARM
	ArchX86    Architecture = "x86"         // 32-bit Intel
	ArchX86_64 Architecture = "x86_64"      // 64-bit Intel
)

// ParseArchitecture maps the ABI reported by the device to a known architecture.
func ParseArchitecture(abi string) (Architecture, error) {
	switch Architecture(strings.TrimSpace(abi)) {
	case ArchARM64:
		return ArchARM64, nil
	case ArchARM:
		return ArchARM, nil
	case ArchX86:
		return ArchX86, nil
	case ArchX86_64:
		return ArchX86_64, nil
	}

	return "", fmt.Errorf("unsupported architecture [%s]", abi)
}

// AssetTag returns the architecture tag used in Frida release asset names.
func (arch Architecture) AssetTag() string {
	switch arch {
	case ArchARM64:
		return "android-arm64"
	case ArchARM:
		return "android-arm"
	case ArchX86:
		return "android-x86"
	case ArchX86_64:
		return "android-x86_64"
	}

	return ""
}

// String returns the ABI name of the architecture.
func (arch Architecture) String() string {
	return string(arch)
}
