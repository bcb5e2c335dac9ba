package types

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// GenerateID creates a short stable ID from the given parts
func GenerateID(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(hash[:])[:16]
}
