package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
)

func TestBuildCrackRoundTrip(t *testing.T) {
	const start = "abcd"
	const numLinks = 5

	end, err := Build(start, numLinks, hashalgo.MD5)
	require.NoError(t, err)

	digest, err := hashalgo.Hash(start, hashalgo.MD5)
	require.NoError(t, err)

	candidate, ok, err := Crack(start, end, numLinks, digest, hashalgo.MD5, len(start))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, start, candidate)
}

func TestCrackRecoversFromEveryDepth(t *testing.T) {
	const start = "wxyz"
	const numLinks = 6

	end, err := Build(start, numLinks, hashalgo.MD5)
	require.NoError(t, err)

	pwd := start
	for depth := 0; depth < numLinks; depth++ {
		digest, err := hashalgo.Hash(pwd, hashalgo.MD5)
		require.NoError(t, err)

		candidate, ok, err := Crack(start, end, numLinks, digest, hashalgo.MD5, len(start))
		require.NoError(t, err)
		require.True(t, ok, "depth %d", depth)
		assert.Equal(t, start, candidate)

		pwd, err = step(pwd, uint64(depth), hashalgo.MD5, len(start))
		require.NoError(t, err)
	}
}

func TestCrackMiss(t *testing.T) {
	end, err := Build("abcd", 5, hashalgo.MD5)
	require.NoError(t, err)

	digest, err := hashalgo.Hash("zzzz", hashalgo.MD5)
	require.NoError(t, err)

	_, ok, err := Crack("abcd", end, 5, digest, hashalgo.MD5, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBuildRejectsScrypt(t *testing.T) {
	_, err := Build("abcd", 5, hashalgo.Scrypt)
	assert.Error(t, err)
}
