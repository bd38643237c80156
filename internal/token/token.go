// Package token issues and verifies the signed bearer tokens used for
// authentication. Each token carries a tagged identity: the role it was
// issued for and the numeric id of that account, decided at issuance time.
package token

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role identifies which kind of account a token was issued for.
type Role string

const (
	RoleLearner Role = "learner"
	RoleSpeaker Role = "speaker"
)

var (
	// ErrInvalidToken is returned when a token fails verification for any
	// reason: bad signature, expired, malformed, or missing identity.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Identity is the verified identity carried by a token.
type Identity struct {
	Role Role
	ID   int64
}

// Claims extends the registered JWT claims with the account role. The
// account id travels in the standard subject claim.
type Claims struct {
	jwt.RegisteredClaims
	Role Role `json:"role"`
}

// Manager signs and verifies tokens with a shared HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager. ttl is the validity window applied
// to every issued token.
func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// Issue signs a token for the given identity.
func (m *Manager) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Role: id.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks the token signature and expiry and returns the identity it
// carries. A structurally valid token without a recognized role claim is
// rejected: every token must name exactly one identity.
func (m *Manager) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.Role != RoleLearner && claims.Role != RoleSpeaker {
		return Identity{}, ErrInvalidToken
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	return Identity{Role: claims.Role, ID: id}, nil
}
