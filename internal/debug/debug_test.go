package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetEnabledRoundTrip(t *testing.T) {
	SetEnabled(true)
	assert.True(t, Enabled())

	SetEnabled(false)
	assert.False(t, Enabled())
}

func TestInitFromLogLevelSetsDebug(t *testing.T) {
	t.Setenv("DEBUG", "")
	t.Setenv("LOG_LEVEL", "")

	InitFromLogLevel("debug")
	assert.True(t, Enabled())

	InitFromLogLevel("info")
	assert.False(t, Enabled())
}
