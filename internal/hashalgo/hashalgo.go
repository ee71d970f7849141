// Package hashalgo defines the closed enumeration of hash algorithms
// rainbowforge supports and dispatches digest computation to them.
//
// MD5 uses the standard library and SHA3-512 uses golang.org/x/crypto/sha3;
// SHA-256 uses
// github.com/minio/sha256-simd, which picks SIMD-accelerated assembly
// when the CPU supports it and falls back to the standard algorithm
// otherwise — chain construction and cracking both hash on the order
// of links*chains times, so this is where acceleration pays off.
package hashalgo

import (
	"crypto/md5"
	"fmt"
	"strings"

	sha256simd "github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// Algorithm is the closed set of hash algorithms rainbowforge knows about.
type Algorithm int

const (
	MD5 Algorithm = iota
	SHA256
	SHA3_512
	Scrypt
)

// scrypt parameters for the one-shot hash-and-dump use case (§1 Non-goals:
// not a KDF service, just a digest producer).
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// DigestSize returns the fixed digest length for algo, or -1 for Scrypt
// (whose PHC-string output has no fixed length).
func DigestSize(algo Algorithm) int {
	switch algo {
	case MD5:
		return md5.Size
	case SHA256:
		return sha256simd.Size
	case SHA3_512:
		return 64
	default:
		return -1
	}
}

// Chainable reports whether algo may be used inside a rainbow chain.
// Scrypt's random per-call salt makes chain construction non-deterministic,
// so it is rejected by the table builder (design note §9).
func Chainable(algo Algorithm) bool {
	return algo != Scrypt
}

func (a Algorithm) String() string {
	switch a {
	case MD5:
		return "md5"
	case SHA256:
		return "sha256"
	case SHA3_512:
		return "sha3_512"
	case Scrypt:
		return "scrypt"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// Parse maps a lowercase algorithm name (as stored in file/wire headers)
// back to an Algorithm, mirroring the original's Display/parse pair.
func Parse(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "md5":
		return MD5, nil
	case "sha256":
		return SHA256, nil
	case "sha3_512":
		return SHA3_512, nil
	case "scrypt":
		return Scrypt, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q", name)
	}
}

// Hash computes the digest of password under algo. For MD5, SHA-256 and
// SHA3-512 this is a fixed-size digest; for Scrypt it is a PHC-format
// string, freshly salted on every call.
func Hash(password string, algo Algorithm) ([]byte, error) {
	switch algo {
	case MD5:
		sum := md5.Sum([]byte(password))
		return sum[:], nil
	case SHA256:
		sum := sha256simd.Sum256([]byte(password))
		return sum[:], nil
	case SHA3_512:
		sum := sha3.Sum512([]byte(password))
		return sum[:], nil
	case Scrypt:
		return hashScrypt(password)
	default:
		return nil, fmt.Errorf("unknown algorithm %d", int(algo))
	}
}
