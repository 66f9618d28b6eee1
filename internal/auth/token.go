package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure outcome of Verify. Malformed, tampered
// and expired tokens all collapse into it so callers cannot leak which case
// occurred to an external prober.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenTTL is how long an issued session stays valid. It matches the session
// cookie's max age.
const TokenTTL = 30 * 24 * time.Hour

// Identity carries the user profile obtained from the identity provider at
// login. It is embedded verbatim in the session token and never re-fetched.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type sessionClaims struct {
	jwt.RegisteredClaims
	User Identity `json:"user"`
}

// Codec issues and verifies signed session tokens. The secret is fixed at
// construction and shared process-wide.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec signing with the given secret. A zero ttl falls back
// to TokenTTL.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session token embedding the identity plus issued-at and
// expiry claims.
func (c *Codec) Issue(identity Identity) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		User: identity,
	})
	return token.SignedString(c.secret)
}

// Verify checks the token's signature and expiry and returns the embedded
// identity. Every failure mode returns ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (Identity, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return claims.User, nil
}
