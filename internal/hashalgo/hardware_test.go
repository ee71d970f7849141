package hashalgo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSHAHardwareSupportDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		HasSHAHardwareSupport()
	})
}

func TestHardwareInfoReportsArchitecture(t *testing.T) {
	info := HardwareInfo()
	assert.Equal(t, runtime.GOARCH, info["architecture"])
	assert.Contains(t, info, "sha_hardware_support")
	assert.Contains(t, info, "go_version")
}
