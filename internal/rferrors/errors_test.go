package rferrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesKind(t *testing.T) {
	err := New(InvalidFormat, "bad header")
	assert.True(t, Is(err, InvalidFormat))
	assert.False(t, Is(err, FileRead))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(WriteError, "writing output", cause)

	assert.True(t, Is(err, WriteError))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIsFalseForNonRFError(t *testing.T) {
	assert.False(t, Is(errors.New("plain error"), InvalidFormat))
}
