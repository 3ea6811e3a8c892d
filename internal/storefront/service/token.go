package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// TokenService issues and checks login session tokens.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	TTL      time.Duration
}

var _ jwtx.Verifier = (*TokenService)(nil)

// NewTokenService builds an HS256 token service around secret. A zero ttl
// means jwtx.DefaultSessionTTL.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	hs, err := jwtx.NewHS256(secret, issuer)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	return &TokenService{Signer: hs, Verifier: hs, Issuer: issuer, TTL: ttl}, nil
}

// Issue signs a token for u valid from now until now+TTL.
func (s *TokenService) Issue(u domain.User, now time.Time) (string, time.Time, error) {
	claims := jwtx.NewSessionClaims(u.ID, u.Email, s.Issuer, s.TTL, now)
	tok, err := s.Signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return tok, claims.ExpiresAt.Time, nil
}

func (s *TokenService) Verify(token string) (jwtx.Claims, error) {
	return s.Verifier.Verify(token)
}
