package hashalgo

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// HasSHAHardwareSupport reports whether the CPU exposes SHA extensions
// that github.com/minio/sha256-simd can use to accelerate SHA256; when
// false, sha256-simd falls back to the portable Go implementation.
func HasSHAHardwareSupport() bool {
	switch runtime.GOARCH {
	case "amd64", "386":
		return cpu.X86.HasSHA
	case "arm64":
		return cpu.ARM64.HasSHA2
	default:
		return false
	}
}

// HardwareInfo summarizes the acceleration available to the hash
// algorithms in this process, for /healthz-adjacent diagnostics.
func HardwareInfo() map[string]any {
	return map[string]any{
		"sha_hardware_support": HasSHAHardwareSupport(),
		"architecture":         runtime.GOARCH,
		"go_version":           runtime.Version(),
	}
}
