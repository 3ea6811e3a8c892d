package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
	"math/big"
	"strconv"
)

const (
	otpMin  = 100000
	otpSpan = 900000 // 100000..999999 inclusive
)

// GenerateOTP returns a six digit code drawn uniformly from 100000-999999
// using the system CSPRNG.
func GenerateOTP() (string, error) {
	return GenerateOTPFrom(rand.Reader)
}

// GenerateOTPFrom draws the code from r instead of crypto/rand.
func GenerateOTPFrom(r io.Reader) (string, error) {
	n, err := rand.Int(r, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("cryptox: generate otp: %w", err)
	}
	return strconv.FormatInt(n.Int64()+otpMin, 10), nil
}

// EqualOTP compares two codes in constant time. Empty codes never match.
func EqualOTP(stored, candidate string) bool {
	if stored == "" || candidate == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
