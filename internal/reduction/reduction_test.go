package reduction

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenneth/rainbowforge/internal/charset"
)

func TestReduceRangeAndLength(t *testing.T) {
	digests := [][]byte{
		{0x00},
		{0xff, 0xff, 0xff, 0xff},
		make([]byte, 64), // sha3-512 width, all zero
	}

	for _, d := range digests {
		for passwordLen := 1; passwordLen <= 8; passwordLen++ {
			for r := uint64(0); r < 5; r++ {
				pw := Reduce(d, r, passwordLen)
				assert.Len(t, pw, passwordLen)
				for i := 0; i < len(pw); i++ {
					assert.True(t, charset.Contains(pw[i]), "character %q out of range", pw[i])
				}
			}
		}
	}
}

func TestReduceIsDeterministic(t *testing.T) {
	digest := []byte{1, 2, 3, 4, 5}
	a := Reduce(digest, 7, 6)
	b := Reduce(digest, 7, 6)
	assert.Equal(t, a, b)
}

func TestReduceVariesWithRound(t *testing.T) {
	digest := []byte{1, 2, 3, 4, 5}
	a := Reduce(digest, 0, 6)
	b := Reduce(digest, 1, 6)
	assert.NotEqual(t, a, b)
}
