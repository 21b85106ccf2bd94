// Package random generates unguessable keys.
package random

import "crypto/rand"

// Key returns n random bytes, for use as a signing key.
func Key(n int) ([]byte, error) {
	key := make([]byte, n)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	return key, nil
}
