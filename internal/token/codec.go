// Package token implements encoding, decoding and issuance of the signed
// credentials used by the auth subsystem. Access and refresh tokens share one
// codec but are signed with two independent secrets, so a token of one class
// never verifies as the other.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/budgetly/expense-tracker/internal/errors"
)

// Claims is the typed claim set carried by both token classes.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// Codec signs and verifies claim sets with a caller-supplied secret. It is
// stateless apart from the configured signing algorithm; secrets are always
// explicit arguments so tests can exercise both classes independently.
type Codec struct {
	method jwt.SigningMethod
}

// NewCodec builds a codec for the given algorithm identifier (e.g. "HS256").
func NewCodec(algorithm string) (*Codec, error) {
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	return &Codec{method: method}, nil
}

// Encode signs a claim set for subject, stamping the expiry at now+ttl.
func (c *Codec) Encode(subject string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	signed, err := jwt.NewWithClaims(c.method, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry under secret and returns the claim
// set. Signature mismatch and elapsed expiry are both decode failures; no
// other validation happens at this layer.
func (c *Codec) Decode(tokenString string, secret string) (*Claims, error) {
	var registered jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &registered, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}))
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, apperrors.ErrTokenInvalid
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}
	return claims, nil
}
