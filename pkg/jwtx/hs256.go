package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret we accept, in bytes.
const MinSecretLength = 32

// HS256 signs and verifies tokens with a shared secret held by the server.
type HS256 struct {
	secret []byte
	issuer string

	// Now is the verification clock. Defaults to time.Now.
	Now func() time.Time
}

var (
	_ Signer   = (*HS256)(nil)
	_ Verifier = (*HS256)(nil)
)

// NewHS256 builds a signer/verifier. Tokens whose iss differs from issuer
// are rejected; an empty issuer skips that check.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need %d bytes, got %d", ErrWeakSecret, MinSecretLength, len(secret))
	}

	// Copy so callers can't mutate the key underneath us.
	key := make([]byte, len(secret))
	copy(key, secret)

	return &HS256{secret: key, issuer: issuer, Now: time.Now}, nil
}

// Sign returns the compact serialisation of c.
func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	s, err := tok.SignedString(h.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return s, nil
}

// Verify validates the signature, issuer, exp and nbf of token.
func (h *HS256) Verify(token string) (Claims, error) {
	now := h.Now
	if now == nil {
		now = time.Now
	}

	parser := jwt.NewParser(
		jwt.WithTimeFunc(now),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	_, err := parser.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrAlgMismatch
		}
		return h.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, ErrAlgMismatch):
		return ErrAlgMismatch
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	default:
		return fmt.Errorf("jwtx: parse or verify: %w", err)
	}
}
