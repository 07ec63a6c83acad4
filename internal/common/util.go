package common

import (
	"crypto/rand"
)

// GenerateRandByteArray returns size bytes read from crypto/rand.
// It panics if the system source of randomness fails.
func GenerateRandByteArray(size int) []byte {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return buf
}

// WipeByteArray overwrites buf with zeroes.
func WipeByteArray(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
