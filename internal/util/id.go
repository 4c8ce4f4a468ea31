package util

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex returns n random bytes encoded as a lowercase hex string.
// Record IDs use 8 bytes; session tokens use 32.
func RandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("util: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
