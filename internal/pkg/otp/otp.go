package otp

import (
	"crypto/rand"
	"math/big"
)

// DefaultLength is the number of digits in a verification code.
const DefaultLength = 6

// GenerateCode returns a uniformly random numeric string of the given length.
// Each digit is drawn independently from crypto/rand, so short codes carry no
// modulo bias. Lengths below 1 fall back to DefaultLength.
func GenerateCode(length int) (string, error) {
	if length < 1 {
		length = DefaultLength
	}
	const digits = "0123456789"
	b := make([]byte, length)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		b[i] = digits[idx.Int64()]
	}
	return string(b), nil
}
