package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/notify"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/postgres"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// BuildVersion is overridden at build time with
// -ldflags "-X github.com/aussiebroadwan/storefront/internal/storefront/app.BuildVersion=...".
var BuildVersion = "v0.1.0"

// Application encapsulates the storefront service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	media    media.Storage
	uploads  http.Handler // nil unless media is local
	notifier notify.Notifier

	// Services
	tokenService        *service.TokenService
	authService         *service.AuthService
	categoryService     *service.CategoryService
	productService      *service.ProductService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initMedia(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initNotifier(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("storefront starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down storefront...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("storefront stopped")
	return nil
}

// initDatabase opens the configured store and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var db store.Store
	switch app.cfg.DatabaseDriver {
	case "postgres":
		pg, err := postgres.NewStore(ctx, app.cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = pg
	default:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		lite, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db = lite
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

func (app *Application) initMedia(ctx context.Context) error {
	switch app.cfg.MediaDriver {
	case "s3":
		s3, err := media.NewS3(ctx, media.S3Config{
			Endpoint:     app.cfg.S3Endpoint,
			Region:       app.cfg.S3Region,
			Bucket:       app.cfg.S3Bucket,
			AccessKey:    app.cfg.S3AccessKey,
			SecretKey:    app.cfg.S3SecretKey,
			UsePathStyle: app.cfg.S3UsePathStyle,
			PublicURL:    app.cfg.S3PublicURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 media: %w", err)
		}
		app.media = s3
		app.logger.Info("media stored in s3", "bucket", app.cfg.S3Bucket, "public_url", s3.PublicURL)
	default:
		local, err := media.NewLocal(app.cfg.UploadDir, media.DefaultBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local media: %w", err)
		}
		app.media = local
		app.uploads = local.Handler()
		app.logger.Info("media stored locally", "dir", app.cfg.UploadDir)
	}
	return nil
}

func (app *Application) initNotifier() error {
	switch app.cfg.Notifier {
	case "smtp":
		n, err := notify.NewSMTPNotifier(
			app.cfg.SMTPHost,
			app.cfg.SMTPPort,
			app.cfg.SMTPUsername,
			app.cfg.SMTPPassword,
			app.cfg.SMTPFrom,
			app.cfg.AppName,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize smtp notifier: %w", err)
		}
		app.notifier = n
	default:
		app.logger.Warn("one-time codes are written to the log; set NOTIFIER=smtp to send mail")
		app.notifier = notify.LogNotifier{}
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	tokens, err := InitSessionKeys(app.cfg, app.logger)
	if err != nil {
		return err
	}
	app.tokenService = tokens

	hasher, err := cryptox.NewHasher(app.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	app.authService = &service.AuthService{
		Store:    app.db,
		Notifier: app.notifier,
		Tokens:   app.tokenService,
		Hasher:   hasher,
		OTPTTL:   app.cfg.OTPTTL,
	}
	app.categoryService = &service.CategoryService{Store: app.db, Media: app.media}
	app.productService = &service.ProductService{Store: app.db, Media: app.media}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
	return nil
}

// RateLimits maps the configured overrides onto the router's profiles.
func (c Config) RateLimits() httpapi.RateLimits {
	conv := func(o RateLimitOverride) httpx.RateLimitConfig {
		return httpx.RateLimitConfig{
			RequestsPerWindow: o.Requests,
			Window:            time.Duration(o.WindowSec) * time.Second,
			Burst:             o.Burst,
		}
	}
	return httpapi.RateLimits{
		Disabled: !c.RateLimitEnabled,
		Strict:   conv(c.RateLimitStrict),
		Moderate: conv(c.RateLimitModerate),
		Lenient:  conv(c.RateLimitLenient),
		Public:   conv(c.RateLimitPublic),
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.cfg.APIPrefix,
		app.tokenService,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Uploads = app.uploads
	router.Limits = app.cfg.RateLimits()
	router.CatalogueWritesRequireAuth = app.cfg.CatalogueWriteAuth
	router.TrustProxyHeaders = app.cfg.TrustProxyHeaders
	router.AuthService = app.authService
	router.CategoryService = app.categoryService
	router.ProductService = app.productService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
