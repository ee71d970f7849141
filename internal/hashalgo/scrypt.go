package hashalgo

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// hashScrypt produces a PHC-format string: $scrypt$ln=N,r=R,p=P$salt$hash
// Salt is fresh random bytes on every call, so Scrypt output is never
// chain-able — see Chainable.
func hashScrypt(password string) ([]byte, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating scrypt salt: %w", err)
	}

	logN := 0
	for n := scryptN; n > 1; n >>= 1 {
		logN++
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving scrypt key: %w", err)
	}

	phc := fmt.Sprintf(
		"$scrypt$ln=%d,r=%d,p=%d$%s$%s",
		logN, scryptR, scryptP,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return []byte(phc), nil
}
