package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// MaxPasswordBytes is the most bcrypt will look at. Longer inputs are
// rejected instead of silently truncated.
const MaxPasswordBytes = 72

var (
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrInvalidCost      = errors.New("cryptox: bcrypt cost out of range")
)

// Hasher hashes and verifies passwords with bcrypt. Each hash carries its
// own random salt and cost, so changing Cost only affects new hashes.
type Hasher struct {
	cost  int
	dummy []byte
}

// NewHasher validates cost and precomputes a dummy hash for CompareDummy.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCost, cost)
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("storefront-dummy"), cost)
	if err != nil {
		return nil, fmt.Errorf("cryptox: dummy hash: %w", err)
	}

	return &Hasher{cost: cost, dummy: dummy}, nil
}

func (h *Hasher) Cost() int { return h.cost }

// Hash returns the bcrypt encoding of password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(hash), nil
}

// Verify compares password against a stored hash. Any failure, including a
// malformed hash, is reported as ErrPasswordMismatch. Inputs longer than
// MaxPasswordBytes never match, since bcrypt would ignore the excess.
func (h *Hasher) Verify(password, hash string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// CompareDummy burns roughly the same time as a real Verify. Call it when
// there is no stored hash so a missing account can't be told apart by timing.
func (h *Hasher) CompareDummy(password string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
}
