// Package auth holds the authentication core: the JWT codec, the token
// issuer, the credential authenticator and the transport-agnostic request
// guard.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// MinKeyLength is the shortest accepted HMAC key.
const MinKeyLength = 32

// ErrShortKey is returned by NewCodec for keys below MinKeyLength.
var ErrShortKey = fmt.Errorf("signing key must be at least %d bytes", MinKeyLength)

// TokenType tells access tokens from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "ACCESS"
	TokenTypeRefresh TokenType = "REFRESH"
)

func (t TokenType) valid() bool {
	return t == TokenTypeAccess || t == TokenTypeRefresh
}

// Claims is the JWT payload. Subject is the user's email. Authorities is a
// comma-joined list and is set on access tokens only.
type Claims struct {
	jwt.RegisteredClaims
	UserID      int64     `json:"userId"`
	Authorities string    `json:"authorities,omitempty"`
	TokenType   TokenType `json:"tokenType"`
}

// AuthorityList splits Authorities.
func (c *Claims) AuthorityList() []string {
	if c.Authorities == "" {
		return nil
	}
	return strings.Split(c.Authorities, ",")
}

// Codec signs and verifies HS512 tokens with a symmetric key.
type Codec struct {
	key    []byte
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customizes a Codec.
type CodecOption func(*Codec)

// WithClock replaces time.Now for issuing and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

func NewCodec(key []byte, opts ...CodecOption) (*Codec, error) {
	if len(key) < MinKeyLength {
		return nil, ErrShortKey
	}

	c := &Codec{
		key: append([]byte(nil), key...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

// Now returns the codec clock reading truncated to whole seconds.
func (c *Codec) Now() time.Time {
	return c.now().UTC().Truncate(time.Second)
}

// Encode signs claims. Timestamps are truncated to seconds.
func (c *Codec) Encode(claims Claims) (string, error) {
	if !claims.TokenType.valid() {
		return "", fmt.Errorf("unknown token type %q", claims.TokenType)
	}

	claims.IssuedAt = normalize(claims.IssuedAt)
	claims.ExpiresAt = normalize(claims.ExpiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Decode verifies signature, algorithm and expiry. Every failure wraps
// common.ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := c.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !claims.TokenType.valid() {
		return nil, fmt.Errorf("%w: unknown token type %q", common.ErrInvalidToken, claims.TokenType)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, errors.New("missing subject"))
	}

	claims.IssuedAt = normalize(claims.IssuedAt)
	claims.ExpiresAt = normalize(claims.ExpiresAt)

	return claims, nil
}

func normalize(d *jwt.NumericDate) *jwt.NumericDate {
	if d == nil {
		return nil
	}
	return jwt.NewNumericDate(d.UTC().Truncate(time.Second))
}
