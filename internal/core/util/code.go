package util

import (
	"crypto/rand"
	"encoding/hex"
)

const profileCodeBytes = 16

// GenerateProfileCode returns a 32 character lowercase hex code with 128 bits
// of entropy. Collisions are negligible at that size, so there is no retry.
func GenerateProfileCode() string {
	buf := make([]byte, profileCodeBytes)

	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)
}
