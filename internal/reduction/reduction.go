// Package reduction implements the rainbow-chain reduction function: a
// deterministic, round-dependent map from a digest to a printable-ASCII
// password of a fixed length.
//
// Two reduction schemes exist in the toolkit this module descends from:
// one that folds the round index into a big-integer digest value, and one
// that indexes the charset with the bytes of the hex-encoded digest and
// ignores the round. Only the former breaks cycles reliably (the round index is what
// makes adjacent reductions in a chain distinct), so it is the only
// scheme implemented here. Build and crack MUST use this same function or
// recovery silently fails — see internal/chain.
package reduction

import (
	"math/big"

	"github.com/kenneth/rainbowforge/internal/bufpool"
	"github.com/kenneth/rainbowforge/internal/charset"
)

// modulus returns 95^passwordLen as a big.Int.
func modulus(passwordLen int) *big.Int {
	base := big.NewInt(charset.Size)
	return new(big.Int).Exp(base, big.NewInt(int64(passwordLen)), nil)
}

// Reduce maps digest and round r to a password of exactly passwordLen
// printable-ASCII characters.
//
// digest is treated as a big-endian unsigned integer; r is added to it;
// the sum is reduced modulo 95^passwordLen; the result is written out as
// passwordLen base-95 digits (least-significant first), each digit
// shifted into the printable range by adding the charset offset. Any
// positions left over once the number is exhausted are padded with the
// charset's zero digit, which is the space character (code 32).
func Reduce(digest []byte, r uint64, passwordLen int) string {
	n := new(big.Int).SetBytes(digest)
	n.Add(n, new(big.Int).SetUint64(r))
	n.Mod(n, modulus(passwordLen))

	base := big.NewInt(charset.Size)
	rem := new(big.Int)
	out := bufpool.GetPassword(passwordLen)
	defer bufpool.PutPassword(out)
	for i := 0; i < passwordLen; i++ {
		n.DivMod(n, base, rem)
		out[i] = byte(rem.Int64()) + charset.Offset
	}
	return string(out)
}
