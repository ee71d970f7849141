package cracker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kenneth/rainbowforge/internal/chain"
	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
)

func TestCrackRecoversKnownVector(t *testing.T) {
	const start = "abcd"
	const numLinks = 5

	end, err := chain.Build(start, numLinks, hashalgo.MD5)
	require.NoError(t, err)

	table := rainbowtable.Table{
		Header: rainbowtable.NewHeader(hashalgo.MD5, 4, numLinks),
		Chains: []rainbowtable.ChainEntry{{Start: start, End: end}},
	}

	digest, err := hashalgo.Hash(start, hashalgo.MD5)
	require.NoError(t, err)

	found, err := Crack(context.Background(), table, [][]byte{digest}, 2)
	require.NoError(t, err)
	require.Len(t, found, 1)

	hexDigest := "e2fc714c4727ee9395f324cd2e7f331f"
	assert.Equal(t, "abcd", found[hexDigest])
}

func TestCrackFailsWithNoPasswordsFound(t *testing.T) {
	table := rainbowtable.Table{
		Header: rainbowtable.NewHeader(hashalgo.MD5, 4, 5),
		Chains: nil,
	}
	digest, err := hashalgo.Hash("zzzz", hashalgo.MD5)
	require.NoError(t, err)

	_, err = Crack(context.Background(), table, [][]byte{digest}, 1)
	assert.Error(t, err)
}

func TestCrackRejectsZeroWorkers(t *testing.T) {
	table := rainbowtable.Table{Header: rainbowtable.NewHeader(hashalgo.MD5, 4, 5)}
	_, err := Crack(context.Background(), table, nil, 0)
	assert.Error(t, err)
}
