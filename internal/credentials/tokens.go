package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpired is returned for a well-formed, correctly signed token past its exp.
	ErrExpired = errors.New("token expired")
	// ErrInvalidToken covers bad signatures, wrong algorithms and malformed input.
	ErrInvalidToken = errors.New("invalid token")
)

// TokenIssuer signs and validates HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	now    func() time.Time
}

// NewTokenIssuer returns an issuer. now may be nil to use the wall clock.
func NewTokenIssuer(secret string, now func() time.Time) *TokenIssuer {
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), now: now}
}

// Issue signs claims with iat and exp added. Caller-supplied iat/exp are overwritten.
func (t *TokenIssuer) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("issue token: empty secret")
	}
	now := t.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm and expiry and returns the claims.
func (t *TokenIssuer) Validate(token string) (map[string]any, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	claims := jwt.MapClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if _, ok := claims["exp"]; !ok {
		return nil, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}
	return map[string]any(claims), nil
}
