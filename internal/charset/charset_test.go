package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsRange(t *testing.T) {
	assert.False(t, Contains(31))
	assert.True(t, Contains(32))
	assert.True(t, Contains(126))
	assert.False(t, Contains(127))
}

func TestValidPassword(t *testing.T) {
	assert.True(t, ValidPassword("Hello, World!"))
	assert.False(t, ValidPassword("\x00\x01"))
	assert.True(t, ValidPassword(""))
}

func TestSizeMatchesPrintableASCIIRange(t *testing.T) {
	assert.Equal(t, Max-Min+1, Size)
}
