// Package idgen generates opaque, prefixed identifiers for public-facing records.
package idgen

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateSecureID returns "<prefix>_<suffix>" where suffix is length characters
// drawn from [0-9a-z] using crypto/rand. The suffix carries no timing or
// sequence information.
func GenerateSecureID(prefix string, length int) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("idgen: prefix must not be empty")
	}
	if length <= 0 {
		return "", fmt.Errorf("idgen: length must be positive, got %d", length)
	}

	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("idgen: read random bytes: %w", err)
	}

	suffix := make([]byte, length)
	for i, b := range buf {
		suffix[i] = idAlphabet[int(b)%len(idAlphabet)]
	}

	return prefix + "_" + string(suffix), nil
}

// ValidateIDFormat reports whether id is "<expectedPrefix>_<suffix>" with a
// non-empty suffix containing only [0-9a-z].
func ValidateIDFormat(id, expectedPrefix string) bool {
	if id == "" || expectedPrefix == "" {
		return false
	}

	want := expectedPrefix + "_"
	if !strings.HasPrefix(id, want) {
		return false
	}

	suffix := id[len(want):]
	if suffix == "" {
		return false
	}
	for _, char := range suffix {
		if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
			return false
		}
	}
	return true
}

// HashKey256 returns the hex-encoded HMAC-SHA256 of key under secret.
// Used for storing lookup hashes of bearer credentials without the plaintext.
func HashKey256(key string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(key))
	return hex.EncodeToString(mac.Sum(nil))
}
