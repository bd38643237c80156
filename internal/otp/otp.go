// Package otp generates and validates the one-time codes used for email
// verification.
package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Length is the number of digits in a generated code.
const Length = 6

// Generate returns a uniformly random 6-digit code as a zero-padded string.
// The string form preserves leading zeros, so "004217" is a valid code.
func Generate() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand reads from the OS entropy source; failure here means
		// the process cannot safely continue issuing codes.
		panic(fmt.Sprintf("failed to generate secure random number: %v", err))
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// Valid reports whether input matches the stored code and the expiration
// has not passed. The expiry bound is inclusive: a code presented at
// exactly expiresAt is still valid.
func Valid(input, stored string, expiresAt, now time.Time) bool {
	return input == stored && !now.After(expiresAt)
}
