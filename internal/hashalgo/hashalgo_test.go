package hashalgo

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashMD5KnownVector(t *testing.T) {
	digest, err := Hash("pass", MD5)
	require.NoError(t, err)
	assert.Equal(t, "1a1dc91c907f1e22ecfb398a303a3e27", hex.EncodeToString(digest))
}

func TestHashMD5SecondKnownVector(t *testing.T) {
	digest, err := Hash("abcd", MD5)
	require.NoError(t, err)
	assert.Equal(t, "e2fc714c4727ee9395f324cd2e7f331f", hex.EncodeToString(digest))
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, algo := range []Algorithm{MD5, SHA256, SHA3_512, Scrypt} {
		parsed, err := Parse(algo.String())
		require.NoError(t, err)
		assert.Equal(t, algo, parsed)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("not-an-algorithm")
	assert.Error(t, err)
}

func TestChainable(t *testing.T) {
	assert.True(t, Chainable(MD5))
	assert.True(t, Chainable(SHA256))
	assert.True(t, Chainable(SHA3_512))
	assert.False(t, Chainable(Scrypt))
}

func TestScryptProducesPHCString(t *testing.T) {
	digest, err := Hash("whatever", Scrypt)
	require.NoError(t, err)
	assert.Contains(t, string(digest), "$scrypt$")
}
