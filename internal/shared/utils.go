// Package shared holds small helpers for handling secrets: random byte
// generation and wiping sensitive buffers.
package shared

import "crypto/rand"

// RandomBytes returns size bytes from crypto/rand.
func RandomBytes(size int) ([]byte, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// WipeByteArray overwrites b with zeros. Use it on passwords once they have
// been sent or hashed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
