package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMagicWordsAreDistinguishableByFirstFiveBytes(t *testing.T) {
	assert.Equal(t, 5, len(CrackMagic))
	assert.Equal(t, 6, len(UploadMagic))
	assert.NotEqual(t, CrackMagic, UploadMagic[:5])
}

func TestFieldWidthsMatchHeaderLayout(t *testing.T) {
	assert.Equal(t, 16, CharsetSizeFieldWidth)
	assert.Equal(t, 16, NumLinksFieldWidth)
	assert.Equal(t, uint8(32), AsciiOffset)
	assert.Equal(t, "rainbowtable", RainbowTableMagic)
}
