package app

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		JWTSecret:            testSecret,
		Issuer:               "storefront-test",
		TokenTTL:             time.Hour,
		BcryptCost:           4,
		APIPrefix:            "/api",
		DatabaseDriver:       "sqlite",
		DatabaseFile:         filepath.Join(dir, "shop.db"),
		MediaDriver:          "local",
		UploadDir:            filepath.Join(dir, "uploads"),
		Notifier:             "log",
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "json",
		Port:                 0,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestApplicationServesAPI(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Shutdown()) })

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(srv.Close)
	c := shopsdk.NewClient(srv.URL)

	ready, err := c.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)

	_, err = c.SendOTP(t.Context(), "a@x.com")
	require.NoError(t, err)

	cat, err := c.CreateCategory(t.Context(), shopsdk.CategoryForm{CategoryName: shopsdk.String("Books")})
	require.NoError(t, err)
	require.Equal(t, "books", cat.Slug)

	resp, err := http.Get(srv.URL + "/swagger/index.html")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewFailsOnBadDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "missing", "dir", "shop.db")

	_, err := New(cfg)
	require.Error(t, err)
}
