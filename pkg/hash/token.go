package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// TokenDigest returns the hex encoded BLAKE2b-256 digest of a bearer token.
// Lookups are exact: tokens differing only in case produce different digests.
func TokenDigest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
