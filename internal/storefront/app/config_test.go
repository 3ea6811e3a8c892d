package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// noEnvFile points at a file that does not exist.
func noEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), ".env")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadConfigFile(noEnvFile(t))
	require.NoError(t, err)

	require.Equal(t, "storefront", cfg.Issuer)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
	require.Zero(t, cfg.OTPTTL)
	require.Equal(t, 10, cfg.BcryptCost)
	require.Equal(t, "/api", cfg.APIPrefix)
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "local", cfg.MediaDriver)
	require.Equal(t, "log", cfg.Notifier)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, time.Hour, cfg.HousekeepingInterval)
	require.True(t, cfg.RateLimitEnabled)
	require.False(t, cfg.CatalogueWriteAuth)
	require.False(t, cfg.TrustProxyHeaders)
	require.False(t, cfg.RateLimits().Disabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("OTP_TTL", "10m")
	t.Setenv("API_PREFIX", "/v1/")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://shop@localhost/shop")
	t.Setenv("PORT", "9090")
	t.Setenv("RATELIMIT_ENABLED", "false")
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1000")
	t.Setenv("RATELIMIT_STRICT_WINDOW_SEC", "60")
	t.Setenv("RATELIMIT_STRICT_BURST", "500")
	t.Setenv("TRUST_PROXY_HEADERS", "true")

	cfg, err := LoadConfigFile(noEnvFile(t))
	require.NoError(t, err)

	require.Equal(t, 10*time.Minute, cfg.OTPTTL)
	require.Equal(t, "/v1", cfg.APIPrefix)
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, 9090, cfg.Port)
	require.True(t, cfg.TrustProxyHeaders)

	limits := cfg.RateLimits()
	require.True(t, limits.Disabled)
	require.Equal(t, 1000, limits.Strict.RequestsPerWindow)
	require.Equal(t, time.Minute, limits.Strict.Window)
	require.Equal(t, 500, limits.Strict.Burst)
	require.Zero(t, limits.Moderate.RequestsPerWindow)
}

func TestLoadConfigDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"JWT_SECRET="+testSecret+"\nAPP_NAME=Corner Shop\nPORT=7070\n",
	), 0o600))

	// The environment wins over the file.
	t.Setenv("PORT", "6060")

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	require.Equal(t, testSecret, cfg.JWTSecret)
	require.Equal(t, "Corner Shop", cfg.AppName)
	require.Equal(t, 6060, cfg.Port)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			JWTSecret:      testSecret,
			TokenTTL:       time.Hour,
			BcryptCost:     10,
			APIPrefix:      "/api",
			DatabaseDriver: "sqlite",
			DatabaseFile:   "shop.db",
			MediaDriver:    "local",
			UploadDir:      "uploads",
			Notifier:       "log",
			Env:            "dev",
			Port:           8080,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]func(*Config){
		"missing secret":       func(c *Config) { c.JWTSecret = "" },
		"short secret":         func(c *Config) { c.JWTSecret = "too-short" },
		"zero token ttl":       func(c *Config) { c.TokenTTL = 0 },
		"negative otp ttl":     func(c *Config) { c.OTPTTL = -time.Second },
		"bcrypt cost too low":  func(c *Config) { c.BcryptCost = 3 },
		"relative prefix":      func(c *Config) { c.APIPrefix = "api" },
		"unknown database":     func(c *Config) { c.DatabaseDriver = "mysql" },
		"postgres without url": func(c *Config) { c.DatabaseDriver = "postgres" },
		"s3 without bucket":    func(c *Config) { c.MediaDriver = "s3" },
		"unknown media":        func(c *Config) { c.MediaDriver = "ftp" },
		"log notifier in prod": func(c *Config) { c.Env = "prod" },
		"smtp without host":    func(c *Config) { c.Notifier = "smtp"; c.SMTPFrom = "shop@x.com" },
		"unknown notifier":     func(c *Config) { c.Notifier = "sms" },
		"port out of range":    func(c *Config) { c.Port = 70000 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := valid()
			mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfigFile(noEnvFile(t))
	require.ErrorContains(t, err, "JWT_SECRET")
}
