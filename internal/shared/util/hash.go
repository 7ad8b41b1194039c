package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a fixed-length, key-safe identifier for a client ID.
func HashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
