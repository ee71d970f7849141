package tablebuilder

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
)

func TestBuildProducesExpectedHeaderAndRecordCount(t *testing.T) {
	in := strings.NewReader("abcd\nwxyz\n")
	var out bytes.Buffer

	require.NoError(t, build(context.Background(), in, &out, 5, 2, hashalgo.MD5))

	table, err := rainbowtable.Load(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, hashalgo.MD5, table.Header.Algorithm)
	assert.Equal(t, uint8(4), table.Header.PasswordLen)
	assert.Equal(t, uint64(5), table.Header.NumLinks)
	require.Len(t, table.Chains, 2)

	for _, c := range table.Chains {
		ok, err := rainbowtable.Verify(c, table.Header.NumLinks, table.Header.Algorithm)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBuildRejectsScrypt(t *testing.T) {
	err := Build(context.Background(), "/dev/null", "/dev/null", 5, 1, hashalgo.Scrypt)
	assert.Error(t, err)
}

func TestBuildRejectsZeroThreads(t *testing.T) {
	in := strings.NewReader("abcd\n")
	var out bytes.Buffer
	err := build(context.Background(), in, &out, 5, 0, hashalgo.MD5)
	assert.Error(t, err)
}
