package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is read once at startup; nothing below the app package looks at
// the environment.
type Config struct {
	JWTSecret  string        `mapstructure:"JWT_SECRET"`  // Required: HS256 key, at least 32 bytes
	Issuer     string        `mapstructure:"AUTH_ISSUER"` // Issuer claim for session tokens (default: storefront)
	TokenTTL   time.Duration `mapstructure:"TOKEN_TTL"`   // Session token lifetime (default: 24h)
	OTPTTL     time.Duration `mapstructure:"OTP_TTL"`     // One-time code lifetime; 0 means codes never expire (default: 0)
	BcryptCost int           `mapstructure:"BCRYPT_COST"` // bcrypt work factor, 4-31 (default: 10)
	APIPrefix  string        `mapstructure:"API_PREFIX"`  // Mount point of the API routes (default: /api)

	DatabaseDriver string `mapstructure:"DATABASE_DRIVER"` // sqlite or postgres (default: sqlite)
	DatabaseFile   string `mapstructure:"DATABASE_FILE"`   // SQLite file (default: ./storefront.db)
	DatabaseURL    string `mapstructure:"DATABASE_URL"`    // Postgres DSN, required for postgres

	MediaDriver    string `mapstructure:"MEDIA_DRIVER"` // local or s3 (default: local)
	UploadDir      string `mapstructure:"UPLOAD_DIR"`   // Directory for local media (default: ./uploads)
	S3Endpoint     string `mapstructure:"S3_ENDPOINT"`  // Empty for AWS; set for MinIO and friends
	S3Region       string `mapstructure:"S3_REGION"`
	S3Bucket       string `mapstructure:"S3_BUCKET"`
	S3AccessKey    string `mapstructure:"S3_ACCESS_KEY"`
	S3SecretKey    string `mapstructure:"S3_SECRET_KEY"`
	S3UsePathStyle bool   `mapstructure:"S3_USE_PATH_STYLE"`
	S3PublicURL    string `mapstructure:"S3_PUBLIC_URL"` // Base URL objects are served from

	Notifier     string `mapstructure:"NOTIFIER"` // log or smtp (default: log)
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	AppName      string `mapstructure:"APP_NAME"` // Shown in outgoing mail (default: Storefront)

	Env                  string        `mapstructure:"ENV"`                   // dev, staging, prod (default: dev)
	LogLevel             string        `mapstructure:"LOG_LEVEL"`             // debug, info, warn, error (default: info)
	LogFormat            string        `mapstructure:"LOG_FORMAT"`            // json, text (default: json)
	Port                 int           `mapstructure:"PORT"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `mapstructure:"HOUSEKEEPING_INTERVAL"` // Expired code sweep interval (default: 1h)

	RateLimitEnabled   bool `mapstructure:"RATELIMIT_ENABLED"`    // default: true
	CatalogueWriteAuth bool `mapstructure:"CATALOGUE_WRITE_AUTH"` // Require a bearer token for catalogue writes (default: false)
	TrustProxyHeaders  bool `mapstructure:"TRUST_PROXY_HEADERS"`  // Key IP rate limits on X-Forwarded-For (default: false)

	// Per-profile overrides; zero keeps the built-in profile.
	RateLimitStrict   RateLimitOverride `mapstructure:"-"`
	RateLimitModerate RateLimitOverride `mapstructure:"-"`
	RateLimitLenient  RateLimitOverride `mapstructure:"-"`
	RateLimitPublic   RateLimitOverride `mapstructure:"-"`
}

// RateLimitOverride mirrors the RATELIMIT_<PROFILE>_* keys.
type RateLimitOverride struct {
	Requests  int
	WindowSec int
	Burst     int
}

var rateLimitProfiles = []string{"STRICT", "MODERATE", "LENIENT", "PUBLIC"}

// LoadConfig reads ./.env if present, then the environment.
func LoadConfig() (Config, error) {
	return LoadConfigFile(".env")
}

// LoadConfigFile reads path as a dotenv file if it exists. Environment
// variables take precedence over the file.
func LoadConfigFile(path string) (Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // a missing file is fine

	v.AutomaticEnv()

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("AUTH_ISSUER", "storefront")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("OTP_TTL", "0s")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("API_PREFIX", "/api")

	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_FILE", "storefront.db")
	v.SetDefault("DATABASE_URL", "")

	v.SetDefault("MEDIA_DRIVER", "local")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_ACCESS_KEY", "")
	v.SetDefault("S3_SECRET_KEY", "")
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("S3_PUBLIC_URL", "")

	v.SetDefault("NOTIFIER", "log")
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("APP_NAME", "Storefront")

	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PORT", 8080)
	v.SetDefault("SHUTDOWN_GRACE_PERIOD", "10s")
	v.SetDefault("HOUSEKEEPING_INTERVAL", "1h")

	v.SetDefault("RATELIMIT_ENABLED", true)
	v.SetDefault("CATALOGUE_WRITE_AUTH", false)
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	for _, p := range rateLimitProfiles {
		v.SetDefault("RATELIMIT_"+p+"_REQUESTS", 0)
		v.SetDefault("RATELIMIT_"+p+"_WINDOW_SEC", 0)
		v.SetDefault("RATELIMIT_"+p+"_BURST", 0)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	overrides := make([]RateLimitOverride, len(rateLimitProfiles))
	for i, p := range rateLimitProfiles {
		overrides[i] = RateLimitOverride{
			Requests:  v.GetInt("RATELIMIT_" + p + "_REQUESTS"),
			WindowSec: v.GetInt("RATELIMIT_" + p + "_WINDOW_SEC"),
			Burst:     v.GetInt("RATELIMIT_" + p + "_BURST"),
		}
	}
	cfg.RateLimitStrict = overrides[0]
	cfg.RateLimitModerate = overrides[1]
	cfg.RateLimitLenient = overrides[2]
	cfg.RateLimitPublic = overrides[3]

	cfg.APIPrefix = strings.TrimSuffix(cfg.APIPrefix, "/")
	cfg.DatabaseDriver = strings.ToLower(cfg.DatabaseDriver)
	cfg.MediaDriver = strings.ToLower(cfg.MediaDriver)
	cfg.Notifier = strings.ToLower(cfg.Notifier)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that would stop the service from
// starting correctly.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET must be set")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("config: JWT_SECRET must be at least 32 bytes")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	if c.OTPTTL < 0 {
		return errors.New("config: OTP_TTL must not be negative")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if c.APIPrefix != "" && !strings.HasPrefix(c.APIPrefix, "/") {
		return errors.New("config: API_PREFIX must start with /")
	}

	switch c.DatabaseDriver {
	case "sqlite":
		if c.DatabaseFile == "" {
			return errors.New("config: DATABASE_FILE must be set for sqlite")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL must be set for postgres")
		}
	default:
		return fmt.Errorf("config: unknown DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.MediaDriver {
	case "local":
		if c.UploadDir == "" {
			return errors.New("config: UPLOAD_DIR must be set for local media")
		}
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("config: S3_BUCKET must be set for s3 media")
		}
	default:
		return fmt.Errorf("config: unknown MEDIA_DRIVER %q", c.MediaDriver)
	}

	switch c.Notifier {
	case "log":
		if c.Env == "prod" {
			return errors.New("config: NOTIFIER=log would write codes to the log; not allowed when ENV=prod")
		}
	case "smtp":
		if c.SMTPHost == "" || c.SMTPFrom == "" {
			return errors.New("config: SMTP_HOST and SMTP_FROM must be set for smtp")
		}
	default:
		return fmt.Errorf("config: unknown NOTIFIER %q", c.Notifier)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("config: PORT must be between 1 and 65535")
	}
	return nil
}
