package recorder

import (
	"crypto/sha256"
	"encoding/hex"
)

const (
	// MaxHashSize is the maximum number of bytes to hash from very large
	// submissions. Hashing only the first 1MB bounds memory while keeping
	// collision resistance adequate for integrity verification.
	MaxHashSize = 1024 * 1024 // 1MB
)

// HashText computes the SHA-256 hash of the text and returns it as a
// hex-encoded string. For text exceeding MaxHashSize, only the first
// MaxHashSize bytes are hashed.
//
// Returns an empty string for empty text.
func HashText(text string) string {
	if len(text) == 0 {
		return ""
	}

	content := []byte(text)
	if len(content) > MaxHashSize {
		content = content[:MaxHashSize]
	}

	hash := sha256.Sum256(content)

	return hex.EncodeToString(hash[:])
}
