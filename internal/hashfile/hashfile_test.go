package hashfile

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
)

func TestWriteHeaderMatchesKnownBytes(t *testing.T) {
	var buf bytes.Buffer
	err := WriteHeader(&buf, Header{Version: 1, Algorithm: hashalgo.MD5, PasswordLen: 4})
	require.NoError(t, err)

	assert.Equal(t, "01036d643504", hex.EncodeToString(buf.Bytes()))
}

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Header{Version: 1, Algorithm: hashalgo.SHA3_512, PasswordLen: 12}
	require.NoError(t, WriteHeader(&buf, want))

	got, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDigestsRoundTrip(t *testing.T) {
	digest, err := hashalgo.Hash("pass", hashalgo.MD5)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, Header{Version: 1, Algorithm: hashalgo.MD5, PasswordLen: 4}))
	buf.Write(digest)

	got, err := ReadHeader(&buf)
	require.NoError(t, err)
	assert.Equal(t, hashalgo.MD5, got.Algorithm)

	digests, err := ReadDigests(&buf, got.Algorithm)
	require.NoError(t, err)
	require.Len(t, digests, 1)
	assert.Equal(t, digest, digests[0])
}

func TestScryptDigestsSplitOnDelimiter(t *testing.T) {
	a := []byte("$scrypt$ln=15,r=8,p=1$aaaa$bbbb")
	b := []byte("$scrypt$ln=15,r=8,p=1$cccc$dddd")
	data := append(append([]byte{}, a...), b...)

	digests := splitScrypt(data)
	require.Len(t, digests, 2)
	assert.Equal(t, a, digests[0])
	assert.Equal(t, b, digests[1])
}

func TestDumpEmptyDigestsPrintsHeaderOnly(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, WriteHeader(&in, Header{Version: 1, Algorithm: hashalgo.MD5, PasswordLen: 4}))

	var out bytes.Buffer
	require.NoError(t, Dump(&in, &out))

	assert.Contains(t, out.String(), "VERSION: 1")
	assert.Contains(t, out.String(), "ALGORITHM: md5")
	assert.Contains(t, out.String(), "PASSWORD LENGTH: 4")
}
