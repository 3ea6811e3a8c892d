package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUserState(t *testing.T) {
	hash := "$2a$10$hash"

	require.Equal(t, UserUnverified, User{}.State())
	require.Equal(t, UserVerified, User{IsVerified: true}.State())
	require.Equal(t, UserRegistered, User{IsVerified: true, PasswordHash: &hash}.State())
}

func TestOTPExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Second)
	future := now.Add(time.Minute)

	require.False(t, User{}.OTPExpired(now))
	require.True(t, User{OTPExpiresAt: &past}.OTPExpired(now))
	require.True(t, User{OTPExpiresAt: &now}.OTPExpired(now))
	require.False(t, User{OTPExpiresAt: &future}.OTPExpired(now))
}

func TestHasPendingOTP(t *testing.T) {
	code, empty := "123456", ""

	require.False(t, User{}.HasPendingOTP())
	require.False(t, User{OTP: &empty}.HasPendingOTP())
	require.True(t, User{OTP: &code}.HasPendingOTP())
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Electronics":        "electronics",
		"Home & Garden":      "home-garden",
		"Kids' Toys 2024":    "kids-toys-2024",
		" Leading":           "-leading",
		"Trailing!!":         "trailing-",
		"Café Crème":         "caf-cr-me",
		"already-slugged-42": "already-slugged-42",
	}

	for in, want := range cases {
		require.Equal(t, want, Slugify(in), in)
	}
}
