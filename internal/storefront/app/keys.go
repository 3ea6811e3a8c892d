package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
)

// InitSessionKeys builds the token service from the configured HS256
// secret. Every instance sharing the secret accepts the others' tokens;
// rotating it invalidates every session.
//
// Only a short fingerprint of the secret is logged so operators can tell
// which key an instance booted with.
func InitSessionKeys(cfg Config, logger *slog.Logger) (*service.TokenService, error) {
	tokens, err := service.NewTokenService([]byte(cfg.JWTSecret), cfg.Issuer, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}

	logger.Info("session keys initialized",
		"algorithm", "HS256",
		"issuer", cfg.Issuer,
		"ttl", cfg.TokenTTL,
		"fingerprint", fingerprint(cfg.JWTSecret),
	)
	return tokens, nil
}

func fingerprint(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:4])
}
