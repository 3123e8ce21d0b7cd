// Package cryptids generates short random identifiers from a fixed alphabet.
package cryptids

import (
	"crypto/rand"
	"fmt"
)

var (
	IDAlphabet = "bcdfghjklmnpqrstvwxyZBCDFGHJKLMNPQRSTVWXYZ0123456789"
	IDLength   = 18
)

// GenerateID creates a random string from defaults
func GenerateID() (string, error) {
	return generateID(IDAlphabet, IDLength)
}

// generateID draws bytes from crypto/rand and keeps only those that, once
// masked, index into the alphabet. Rejection keeps the distribution uniform.
func generateID(alphabet string, size int) (string, error) {
	if len(alphabet) < 2 {
		return "", fmt.Errorf("alphabet must contain at least 2 characters")
	}
	if size < 1 {
		return "", fmt.Errorf("size must be at least 1")
	}

	mask := 1
	for mask < len(alphabet) {
		mask = (mask << 1) | 1
	}

	id := make([]byte, 0, size)
	buf := make([]byte, size*2)
	for len(id) < size {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			idx := int(b) & mask
			if idx >= len(alphabet) {
				continue
			}
			id = append(id, alphabet[idx])
			if len(id) == size {
				break
			}
		}
	}

	return string(id), nil
}
