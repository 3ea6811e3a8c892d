package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	// maxJSONBody caps auth and product-count bodies.
	maxJSONBody = 1 << 20

	// maxCatalogueBody fits a full set of product images plus form fields.
	maxCatalogueBody = 4*media.MaxUploadBytes + 1<<20
)

// RateLimits holds the per-profile limits. Zero fields fall back to the
// httpx defaults.
type RateLimits struct {
	Disabled bool
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	prefix       string
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// Uploads serves locally stored media under /uploads/. Nil when media
	// lives elsewhere.
	Uploads http.Handler

	// Limits configures rate limiting. Set before ApplyRoutes.
	Limits RateLimits

	// CatalogueWritesRequireAuth puts catalogue writes behind a bearer token.
	CatalogueWritesRequireAuth bool

	// TrustProxyHeaders keys IP rate limits on X-Forwarded-For and
	// X-Real-IP. Leave off unless a proxy in front overwrites them.
	TrustProxyHeaders bool

	AuthService     *service.AuthService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
}

// NewRouter creates a router serving the API under prefix (for example
// "/api"). Health, docs and uploads are always served from the root.
func NewRouter(
	prefix string,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		prefix:       prefix,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Recover sits inside the logger so panics are logged with the request id.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerCategories()
	r.registerProducts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
	if r.Uploads != nil {
		r.Mux.Handle("GET /uploads/", r.Uploads)
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront API
//	@version		0.1.0
//	@description	Email one-time-code sign up, password login and a product catalogue with image uploads.
//	@description
//	@description				Session tokens are HS256 JWTs valid for 24 hours.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) route(method, path string) string {
	return fmt.Sprintf("%s %s%s", method, r.prefix, path)
}

// limit returns the rate limiter for one profile, or a pass-through when
// limiting is disabled.
func (r *Router) limit(byUser bool, def, override httpx.RateLimitConfig) httpx.Middleware {
	if r.Limits.Disabled {
		return func(next http.Handler) http.Handler { return next }
	}
	cfg := def.Merge(override)
	ip := httpx.IPKeyExtractor
	if r.TrustProxyHeaders {
		ip = httpx.ForwardedIPKeyExtractor
	}
	if byUser {
		return httpx.RateLimitByUser(cfg, ip)
	}
	return httpx.RateLimitByIP(cfg, ip)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// send-otp mails a code and login checks a password, so both get the
	// strict profile. Each route owns its own limiter.
	r.Mux.Handle(r.route("POST", "/auth/send-otp"),
		httpx.Chain(http.HandlerFunc(h.HandleSendOTP),
			r.limit(false, httpx.StrictLimit, r.Limits.Strict),
			httpx.MaxBytes(maxJSONBody),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/verify-otp"),
		httpx.Chain(http.HandlerFunc(h.HandleVerifyOTP),
			r.limit(false, httpx.StrictLimit, r.Limits.Strict),
			httpx.MaxBytes(maxJSONBody),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/register"),
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			r.limit(false, httpx.ModerateLimit, r.Limits.Moderate),
			httpx.MaxBytes(maxJSONBody),
		),
	)
	r.Mux.Handle(r.route("POST", "/auth/login"),
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			r.limit(false, httpx.StrictLimit, r.Limits.Strict),
			httpx.MaxBytes(maxJSONBody),
		),
	)

	r.Mux.Handle(r.route("GET", "/auth/me"),
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
			r.limit(true, httpx.LenientLimit, r.Limits.Lenient),
		),
	)
}

// write wraps a catalogue mutation with its body cap, rate limit and,
// when configured, authentication.
func (r *Router) write(h http.HandlerFunc, maxBody int64) http.Handler {
	mws := make([]httpx.Middleware, 0, 3)
	if r.CatalogueWritesRequireAuth {
		mws = append(mws, httpx.AuthnMiddleware(r.verifier))
	}
	mws = append(mws,
		r.limit(r.CatalogueWritesRequireAuth, httpx.ModerateLimit, r.Limits.Moderate),
		httpx.MaxBytes(maxBody),
	)
	return httpx.Chain(h, mws...)
}

func (r *Router) read(h http.HandlerFunc) http.Handler {
	return httpx.Chain(h, r.limit(false, httpx.PublicLimit, r.Limits.Public))
}

func (r *Router) registerCategories() {
	h := &CategoryHandler{Categories: r.CategoryService}

	r.Mux.Handle(r.route("GET", "/categories"), r.read(h.HandleList))
	r.Mux.Handle(r.route("GET", "/categories/{id}"), r.read(h.HandleGet))

	r.Mux.Handle(r.route("POST", "/categories"), r.write(h.HandleCreate, maxCatalogueBody))
	r.Mux.Handle(r.route("PUT", "/categories/{id}"), r.write(h.HandleUpdate, maxCatalogueBody))
	r.Mux.Handle(r.route("DELETE", "/categories/{id}"), r.write(h.HandleDelete, maxJSONBody))
	r.Mux.Handle(r.route("PATCH", "/categories/{id}/product-count"), r.write(h.HandleProductCount, maxJSONBody))
}

func (r *Router) registerProducts() {
	h := &ProductHandler{Products: r.ProductService}

	r.Mux.Handle(r.route("GET", "/products"), r.read(h.HandleList))
	r.Mux.Handle(r.route("GET", "/products/{id}"), r.read(h.HandleGet))
	r.Mux.Handle(r.route("GET", "/products/category/{categoryId}"), r.read(h.HandleListByCategory))

	r.Mux.Handle(r.route("POST", "/products"), r.write(h.HandleCreate, maxCatalogueBody))
	r.Mux.Handle(r.route("PUT", "/products/{id}"), r.write(h.HandleUpdate, maxCatalogueBody))
	r.Mux.Handle(r.route("DELETE", "/products/{id}"), r.write(h.HandleDelete, maxJSONBody))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			r.limit(false, httpx.LenientLimit, r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			r.limit(false, httpx.LenientLimit, r.Limits.Lenient),
		),
	)
}
