// Package chain implements the rainbow-chain engine: the hash-then-reduce
// loop that is run identically to build chains during table construction
// and to replay them during cracking. Bit-exact reproducibility between
// the two call sites is the load-bearing invariant of the whole system —
// both Build and Crack route through the same step function so there is
// only one place that could ever drift.
package chain

import (
	"fmt"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/reduction"
)

// step applies one hash-then-reduce link to password at round r.
func step(password string, r uint64, algo hashalgo.Algorithm, passwordLen int) (string, error) {
	digest, err := hashalgo.Hash(password, algo)
	if err != nil {
		return "", err
	}
	return reduction.Reduce(digest, r, passwordLen), nil
}

// Build runs the chain engine forward from start for numLinks rounds
// (r = 0..numLinks-1) and returns the resulting endpoint.
func Build(start string, numLinks uint32, algo hashalgo.Algorithm) (string, error) {
	if !hashalgo.Chainable(algo) {
		return "", fmt.Errorf("algorithm %s cannot be used in a rainbow chain", algo)
	}
	passwordLen := len(start)
	pwd := start
	for r := uint64(0); r < uint64(numLinks); r++ {
		next, err := step(pwd, r, algo, passwordLen)
		if err != nil {
			return "", err
		}
		pwd = next
	}
	return pwd, nil
}

// Replay runs the chain engine forward from start for exactly steps
// rounds, starting at round index startRound. It is the building block
// Crack uses to walk partial stretches of a chain.
func Replay(start string, startRound uint64, steps uint32, algo hashalgo.Algorithm, passwordLen int) (string, error) {
	pwd := start
	for i := uint32(0); i < steps; i++ {
		next, err := step(pwd, startRound+uint64(i), algo, passwordLen)
		if err != nil {
			return "", err
		}
		pwd = next
	}
	return pwd, nil
}

// Crack attempts to recover the plaintext whose digest is target, given
// one chain (start, end) of numLinks links built with algo over
// passwordLen-character passwords.
//
// For every round i from numLinks-1 down to 0, it reduces target as if it
// had appeared at round i, then replays forward for the remaining
// (numLinks-1-i) rounds; if that lands on the chain's endpoint, target
// must have appeared at round i somewhere along a replay of the chain
// from its start, so start is replayed forward i steps to recover the
// candidate. The candidate is verified by re-hashing it and comparing to
// target, which filters out reduction collisions (two different
// passwords at round i reducing to the same value).
//
// Returns ("", false, nil) if this chain does not contain target.
func Crack(start, end string, numLinks uint32, target []byte, algo hashalgo.Algorithm, passwordLen int) (string, bool, error) {
	for i := int(numLinks) - 1; i >= 0; i-- {
		candidateEnd := reduction.Reduce(target, uint64(i), passwordLen)
		remaining := uint32(int(numLinks) - 1 - i)
		reached, err := Replay(candidateEnd, uint64(i+1), remaining, algo, passwordLen)
		if err != nil {
			return "", false, err
		}
		if reached != end {
			continue
		}

		candidate, err := Replay(start, 0, uint32(i), algo, passwordLen)
		if err != nil {
			return "", false, err
		}

		digest, err := hashalgo.Hash(candidate, algo)
		if err != nil {
			return "", false, err
		}
		if string(digest) == string(target) {
			return candidate, true, nil
		}
	}
	return "", false, nil
}
