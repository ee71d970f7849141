package genhashes

import (
	"bytes"
	"context"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/hashfile"
)

func TestGenerateMatchesKnownBytes(t *testing.T) {
	in := strings.NewReader("pass\n")
	var out bytes.Buffer

	require.NoError(t, generate(context.Background(), in, &out, 1, hashalgo.MD5))

	assert.Equal(t, "01036d643504"+"1a1dc91c907f1e22ecfb398a303a3e27", hex.EncodeToString(out.Bytes()))
}

func TestGenerateRoundTripsThroughHashfile(t *testing.T) {
	in := strings.NewReader("abcd\nwxyz\n")
	var out bytes.Buffer

	require.NoError(t, generate(context.Background(), in, &out, 3, hashalgo.SHA256))

	header, err := hashfile.ReadHeader(&out)
	require.NoError(t, err)
	assert.Equal(t, hashalgo.SHA256, header.Algorithm)
	assert.Equal(t, uint8(4), header.PasswordLen)

	digests, err := hashfile.ReadDigests(&out, header.Algorithm)
	require.NoError(t, err)
	assert.Len(t, digests, 2)
}

func TestGenerateRejectsZeroThreads(t *testing.T) {
	in := strings.NewReader("abcd\n")
	var out bytes.Buffer
	err := generate(context.Background(), in, &out, 0, hashalgo.MD5)
	assert.Error(t, err)
}
