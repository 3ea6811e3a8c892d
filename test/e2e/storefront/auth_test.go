package storefront_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/stretchr/testify/require"
)

func newClient(baseURL string) *shopsdk.Client {
	return shopsdk.NewClient(baseURL)
}

// TestSignUpFlow runs send-otp, verify-otp, register and login against a
// real container and reads the profile back.
func TestSignUpFlow(t *testing.T) {
	baseURL, container := setupContainer(t, nil)

	session := signUp(t, baseURL, container, "a@x.com", "hunter22")

	me, err := session.Me(t.Context())
	require.NoError(t, err)
	require.Equal(t, "a@x.com", me.Email)
	require.Equal(t, "0400000000", me.Mobile)
}

// TestResentCodeReplacesOld verifies only the latest code verifies.
func TestResentCodeReplacesOld(t *testing.T) {
	baseURL, container := setupContainer(t, nil)
	ctx := t.Context()
	client := newClient(baseURL)

	_, err := client.SendOTP(ctx, "b@x.com")
	require.NoError(t, err)
	first := codeFromLogs(t, container, "b@x.com")

	// Loop until the new code differs; two draws can collide.
	var second string
	for range 5 {
		_, err = client.SendOTP(ctx, "b@x.com")
		require.NoError(t, err)
		if second = codeFromLogs(t, container, "b@x.com"); second != first {
			break
		}
	}
	require.NotEqual(t, first, second)

	_, err = client.VerifyOTP(ctx, "b@x.com", first)
	assertStatus(t, err, http.StatusBadRequest, "stale code")

	_, err = client.VerifyOTP(ctx, "b@x.com", second)
	require.NoError(t, err)
}

// TestRegisterRequiresVerification verifies the register preconditions.
func TestRegisterRequiresVerification(t *testing.T) {
	baseURL, _ := setupContainer(t, nil)
	ctx := t.Context()
	client := newClient(baseURL)

	_, err := client.SendOTP(ctx, "c@x.com")
	require.NoError(t, err)

	_, err = client.Register(ctx, shopsdk.RegisterRequest{Email: "c@x.com", Password: "pw", ConfirmPassword: "pw"})
	assertStatus(t, err, http.StatusBadRequest, "unverified register")

	_, err = client.Login(ctx, "c@x.com", "pw")
	assertStatus(t, err, http.StatusBadRequest, "login before register")
}

// TestMeRequiresToken verifies /auth/me rejects anonymous and forged tokens.
func TestMeRequiresToken(t *testing.T) {
	baseURL, _ := setupContainer(t, nil)

	_, err := newClient(baseURL).Me(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, "no token")

	_, err = newClient(baseURL).WithToken("forged.token.value").Me(t.Context())
	assertStatus(t, err, http.StatusUnauthorized, "forged token")
}

// TestRateLimitLogin verifies the strict profile applies to login with the
// default limits (5 per minute).
func TestRateLimitLogin(t *testing.T) {
	baseURL, _ := setupContainer(t, map[string]*string{
		"RATELIMIT_STRICT_REQUESTS":   nil,
		"RATELIMIT_STRICT_WINDOW_SEC": nil,
		"RATELIMIT_STRICT_BURST":      nil,
	})
	ctx := t.Context()
	client := newClient(baseURL)

	for range 5 {
		_, err := client.Login(ctx, "nobody@x.com", "wrong")
		assertStatus(t, err, http.StatusBadRequest, "request before limit")
	}

	_, err := client.Login(ctx, "nobody@x.com", "wrong")
	assertStatus(t, err, http.StatusTooManyRequests, "request after limit")
}
