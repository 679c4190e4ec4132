package scoring

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultPasswordLength matches the generation endpoint's default.
const DefaultPasswordLength = 16

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// GeneratePassword returns a random password drawn uniformly from letters,
// digits and punctuation using crypto-grade randomness.
func GeneratePassword(length int) (string, error) {
	if length <= 0 {
		length = DefaultPasswordLength
	}
	out := make([]byte, length)
	alphabetSize := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("read random index: %w", err)
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
}
