// Package password provides one-way password hashing built on bcrypt.
package password

import "golang.org/x/crypto/bcrypt"

// cost matches bcrypt's recommended work factor for interactive logins.
const cost = 10

// Hash generates a salted bcrypt hash from a plaintext password.
func Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check compares a stored hash with a plaintext password. It returns nil
// when they match.
func Check(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
