package otp

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// ErrInvalidLength is returned when the requested code length is not positive.
var ErrInvalidLength = errors.New("otp: code length must be positive")

// Generator produces one-time password codes.
type Generator interface {
	// Generate returns a numeric code of exactly length digits.
	Generate(length int) (string, error)
}

// NumericGenerator implements Generator with a cryptographically secure
// random source. Codes are uniformly distributed over the full digit space,
// so leading zeros are valid ("0042" is a legal 4-digit code).
type NumericGenerator struct{}

// NewNumeric returns a NumericGenerator.
func NewNumeric() *NumericGenerator {
	return &NumericGenerator{}
}

var ten = big.NewInt(10)

// Generate returns a random numeric string of exactly length digits.
func (*NumericGenerator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = '0' + byte(n.Int64())
	}

	return string(buf), nil
}
