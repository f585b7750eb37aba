package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// PhotoFingerprint returns the hex SHA-256 digest of the raw photo bytes.
func PhotoFingerprint(photo []byte) string {
	sum := sha256.Sum256(photo)
	return hex.EncodeToString(sum[:])
}
