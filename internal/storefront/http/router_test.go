package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	storehttp "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// mailbox records the last code sent to each address.
type mailbox struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *mailbox) SendOTP(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codes == nil {
		m.codes = map[string]string{}
	}
	m.codes[email] = code
	return nil
}

func (m *mailbox) code(t *testing.T, email string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	require.True(t, ok, "no code sent to %s", email)
	return c
}

type testServer struct {
	*httptest.Server
	router *storehttp.Router
	box    *mailbox
	tokens *service.TokenService
}

type serverOption func(*storehttp.Router)

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	hasher, err := cryptox.NewHasher(4)
	require.NoError(t, err)
	tokens, err := service.NewTokenService([]byte(testSecret), "storefront-test", 0)
	require.NoError(t, err)

	uploads, err := media.NewLocal(t.TempDir(), media.DefaultBaseURL)
	require.NoError(t, err)

	box := &mailbox{}
	r := storehttp.NewRouter("/api", tokens, "test", st, slogx.Discard())
	r.Uploads = uploads.Handler()
	r.Limits.Disabled = true
	r.AuthService = &service.AuthService{Store: st, Notifier: box, Tokens: tokens, Hasher: hasher}
	r.CategoryService = &service.CategoryService{Store: st, Media: uploads}
	r.ProductService = &service.ProductService{Store: st, Media: uploads}
	for _, opt := range opts {
		opt(r)
	}
	r.ApplyRoutes()

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, router: r, box: box, tokens: tokens}
}

func (s *testServer) client() *shopsdk.Client {
	return shopsdk.NewClient(s.URL)
}

// register walks email through the whole sign-up flow and returns a
// logged-in client.
func (s *testServer) register(t *testing.T, email, password string) *shopsdk.Client {
	t.Helper()
	ctx := t.Context()
	c := s.client()

	_, err := c.SendOTP(ctx, email)
	require.NoError(t, err)
	_, err = c.VerifyOTP(ctx, email, s.box.code(t, email))
	require.NoError(t, err)
	_, err = c.Register(ctx, shopsdk.RegisterRequest{
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
		Mobile:          "0400000000",
	})
	require.NoError(t, err)

	res, err := c.Login(ctx, email, password)
	require.NoError(t, err)
	return c.WithToken(res.Token)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))))
	return buf.Bytes()
}

func requireAPIError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var apiErr *shopsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
	if message != "" {
		require.Equal(t, message, apiErr.Message)
	}
}

func TestSignUpFlow(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	msg, err := c.SendOTP(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "OTP sent successfully", msg.Message)

	msg, err = c.VerifyOTP(ctx, "a@x.com", srv.box.code(t, "a@x.com"))
	require.NoError(t, err)
	require.Equal(t, "Email verified successfully", msg.Message)

	msg, err = c.Register(ctx, shopsdk.RegisterRequest{
		Email:           "a@x.com",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
		Mobile:          "0400123456",
	})
	require.NoError(t, err)
	require.Equal(t, "User registered successfully", msg.Message)

	login, err := c.Login(ctx, "a@x.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.Equal(t, "a@x.com", login.User.Email)
	require.Equal(t, "0400123456", login.User.Mobile)

	me, err := c.WithToken(login.Token).Me(ctx)
	require.NoError(t, err)
	require.Equal(t, login.User, *me)
}

func TestAuthErrors(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	_, err := c.SendOTP(ctx, "   ")
	requireAPIError(t, err, http.StatusBadRequest, "Email is required")

	_, err = c.VerifyOTP(ctx, "nobody@x.com", "123456")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid OTP")

	_, err = c.Register(ctx, shopsdk.RegisterRequest{Email: "nobody@x.com", Password: "pw", ConfirmPassword: "pw"})
	requireAPIError(t, err, http.StatusBadRequest, "User not found. Verify email first.")

	_, err = c.SendOTP(ctx, "b@x.com")
	require.NoError(t, err)
	_, err = c.Register(ctx, shopsdk.RegisterRequest{Email: "b@x.com", Password: "pw", ConfirmPassword: "pw"})
	requireAPIError(t, err, http.StatusBadRequest, "Email not verified")

	_, err = c.VerifyOTP(ctx, "b@x.com", srv.box.code(t, "b@x.com"))
	require.NoError(t, err)
	_, err = c.Register(ctx, shopsdk.RegisterRequest{Email: "b@x.com", Password: "pw1", ConfirmPassword: "pw2"})
	requireAPIError(t, err, http.StatusBadRequest, "Passwords do not match")

	_, err = c.Login(ctx, "b@x.com", "whatever")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid credentials")
	_, err = c.Login(ctx, "ghost@x.com", "whatever")
	requireAPIError(t, err, http.StatusBadRequest, "Invalid credentials")
}

func TestVerifiedCodeIsSingleUse(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	_, err := c.SendOTP(ctx, "a@x.com")
	require.NoError(t, err)
	code := srv.box.code(t, "a@x.com")

	_, err = c.VerifyOTP(ctx, "a@x.com", code)
	require.NoError(t, err)
	_, err = c.VerifyOTP(ctx, "a@x.com", code)
	requireAPIError(t, err, http.StatusBadRequest, "Invalid OTP")
}

func TestMalformedJSONBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, httpx.ErrCodeInvalidRequest, body.Error)
}

func TestOversizedJSONBody(t *testing.T) {
	srv := newTestServer(t)

	big := `{"email":"a@x.com","password":"` + strings.Repeat("x", 1<<20) + `"}`
	for _, path := range []string{"/api/auth/send-otp", "/api/auth/verify-otp", "/api/auth/register", "/api/auth/login"} {
		resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(big))
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode, path)
	}
}

func TestMeRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()

	_, err := srv.client().Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")

	_, err = srv.client().WithToken("not-a-jwt").Me(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, "")
}

func TestMeRejectsExpiredToken(t *testing.T) {
	srv := newTestServer(t)
	c := srv.register(t, "a@x.com", "hunter22")

	me, err := c.Me(t.Context())
	require.NoError(t, err)

	token, _, err := srv.tokens.Issue(domain.User{ID: me.ID, Email: me.Email}, time.Now().Add(-25*time.Hour))
	require.NoError(t, err)

	_, err = srv.client().WithToken(token).Me(t.Context())
	requireAPIError(t, err, http.StatusUnauthorized, "token expired")
}

func TestCategoryLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	created, err := c.CreateCategory(ctx, shopsdk.CategoryForm{
		CategoryName: shopsdk.String("  Home & Garden "),
		Description:  shopsdk.String("Everything outside"),
		Emoji:        shopsdk.String("🌱"),
		Image:        &shopsdk.File{Name: "garden.PNG", Data: pngBytes(t)},
	})
	require.NoError(t, err)
	require.Equal(t, "Home & Garden", created.CategoryName)
	require.Equal(t, "home-garden", created.Slug)
	require.Zero(t, created.ProductCount)
	require.True(t, strings.HasPrefix(created.Image, "/uploads/"))
	require.True(t, strings.HasSuffix(created.Image, ".png"))

	resp, err := http.Get(srv.URL + created.Image)
	require.NoError(t, err)
	served, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, pngBytes(t), served)

	_, err = c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Home & Garden")})
	requireAPIError(t, err, http.StatusBadRequest, "Category with this name already exists")

	_, err = c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String(" ")})
	requireAPIError(t, err, http.StatusBadRequest, "Category name is required")

	updated, err := c.UpdateCategory(ctx, created.ID, shopsdk.CategoryForm{CategoryName: shopsdk.String("Outdoors")})
	require.NoError(t, err)
	require.Equal(t, "outdoors", updated.Slug)
	require.Equal(t, created.Image, updated.Image)
	require.Equal(t, "Everything outside", updated.Description)

	counted, err := c.AdjustProductCount(ctx, created.ID, 3)
	require.NoError(t, err)
	require.Equal(t, 3, counted.ProductCount)
	counted, err = c.AdjustProductCount(ctx, created.ID, -1)
	require.NoError(t, err)
	require.Equal(t, 2, counted.ProductCount)

	list, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	msg, err := c.DeleteCategory(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Category deleted successfully", msg.Message)

	_, err = c.GetCategory(ctx, created.ID)
	require.True(t, shopsdk.IsNotFound(err))
	_, err = c.DeleteCategory(ctx, created.ID)
	require.True(t, shopsdk.IsNotFound(err))
	_, err = c.AdjustProductCount(ctx, created.ID, 1)
	require.True(t, shopsdk.IsNotFound(err))

	resp, err = http.Get(srv.URL + created.Image)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategoryRejectsNonImage(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.client().CreateCategory(t.Context(), shopsdk.CategoryForm{
		CategoryName: shopsdk.String("Books"),
		Image:        &shopsdk.File{Name: "notes.txt", Data: []byte("plain text, not a picture")},
	})
	requireAPIError(t, err, http.StatusBadRequest, "Please upload an image file")

	list, err := srv.client().ListCategories(t.Context())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestProductLifecycle(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	books, err := c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Books")})
	require.NoError(t, err)
	games, err := c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Games")})
	require.NoError(t, err)

	p, err := c.CreateProduct(ctx, shopsdk.ProductForm{
		Name:        shopsdk.String("The Go Programming Language"),
		Description: shopsdk.String("Donovan and Kernighan"),
		Price:       shopsdk.Float(59.95),
		Quantity:    shopsdk.Int(3),
		Category:    shopsdk.String(books.ID),
		Features:    []string{"hardcover", "380 pages"},
		Images: []shopsdk.File{
			{Name: "front.png", Data: pngBytes(t)},
			{Name: "back.png", Data: pngBytes(t)},
		},
	})
	require.NoError(t, err)
	require.Equal(t, "Books", p.CategoryName)
	require.Equal(t, books.ID, p.Category)
	require.Equal(t, []string{"hardcover", "380 pages"}, p.Features)
	require.Len(t, p.ImageURLs, 2)

	_, err = c.CreateProduct(ctx, shopsdk.ProductForm{
		Name:        shopsdk.String("Chess"),
		Description: shopsdk.String("Board game"),
		Price:       shopsdk.Float(20),
		Quantity:    shopsdk.Int(1),
		Category:    shopsdk.String(games.ID),
	})
	require.NoError(t, err)

	all, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	inBooks, err := c.ListProductsByCategory(ctx, books.ID)
	require.NoError(t, err)
	require.Len(t, inBooks, 1)
	require.Equal(t, p.ID, inBooks[0].ID)

	none, err := c.ListProductsByCategory(ctx, "not-an-id")
	require.NoError(t, err)
	require.Empty(t, none)

	updated, err := c.UpdateProduct(ctx, p.ID, shopsdk.ProductForm{
		Price:  shopsdk.Float(49.95),
		Images: []shopsdk.File{{Name: "new.png", Data: pngBytes(t)}},
	})
	require.NoError(t, err)
	require.InDelta(t, 49.95, updated.Price, 1e-9)
	require.Equal(t, "The Go Programming Language", updated.Name)
	require.Len(t, updated.ImageURLs, 1)
	require.NotContains(t, p.ImageURLs, updated.ImageURLs[0])

	msg, err := c.DeleteProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "Product deleted", msg.Message)

	_, err = c.GetProduct(ctx, p.ID)
	require.True(t, shopsdk.IsNotFound(err))
	_, err = c.UpdateProduct(ctx, p.ID, shopsdk.ProductForm{Price: shopsdk.Float(1)})
	require.True(t, shopsdk.IsNotFound(err))
}

func TestProductValidation(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()
	c := srv.client()

	cat, err := c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Books")})
	require.NoError(t, err)

	valid := func() shopsdk.ProductForm {
		return shopsdk.ProductForm{
			Name:        shopsdk.String("Book"),
			Description: shopsdk.String("A book"),
			Price:       shopsdk.Float(10),
			Quantity:    shopsdk.Int(1),
			Category:    shopsdk.String(cat.ID),
		}
	}

	f := valid()
	f.Name = nil
	_, err = c.CreateProduct(ctx, f)
	requireAPIError(t, err, http.StatusBadRequest, "name is required")

	f = valid()
	f.Price = shopsdk.Float(-1)
	_, err = c.CreateProduct(ctx, f)
	requireAPIError(t, err, http.StatusBadRequest, "")

	f = valid()
	f.Images = make([]shopsdk.File, 5)
	for i := range f.Images {
		f.Images[i] = shopsdk.File{Name: "x.png", Data: pngBytes(t)}
	}
	_, err = c.CreateProduct(ctx, f)
	requireAPIError(t, err, http.StatusBadRequest, "")

	f = valid()
	f.Images = []shopsdk.File{{Name: "x.txt", Data: []byte("hello")}}
	_, err = c.CreateProduct(ctx, f)
	requireAPIError(t, err, http.StatusBadRequest, "Please upload an image file")

	all, err := c.ListProducts(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestProductFeaturesFormValues(t *testing.T) {
	srv := newTestServer(t)

	form := "name=Pen&description=Blue&price=1.5&quantity=10&category=01ARZ3NDEKTSV4RRFFQ69G5FAV" +
		"&categoryName=Stationery&features=refillable&features=fine+tip"
	resp, err := http.Post(srv.URL+"/api/products", "application/x-www-form-urlencoded", strings.NewReader(form))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var p shopsdk.Product
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	require.Equal(t, []string{"refillable", "fine tip"}, p.Features)
	require.Equal(t, "Stationery", p.CategoryName)
	require.Empty(t, p.ImageURLs)
}

func TestCatalogueWritesRequireAuthWhenConfigured(t *testing.T) {
	srv := newTestServer(t, func(r *storehttp.Router) { r.CatalogueWritesRequireAuth = true })
	ctx := t.Context()

	_, err := srv.client().CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Books")})
	requireAPIError(t, err, http.StatusUnauthorized, "")

	c := srv.register(t, "admin@x.com", "hunter22")
	_, err = c.CreateCategory(ctx, shopsdk.CategoryForm{CategoryName: shopsdk.String("Books")})
	require.NoError(t, err)

	list, err := srv.client().ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestRateLimitedLogin(t *testing.T) {
	srv := newTestServer(t, func(r *storehttp.Router) {
		r.Limits = storehttp.RateLimits{Strict: httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Hour, Burst: 2}}
	})
	ctx := t.Context()
	c := srv.client()

	for range 2 {
		_, err := c.Login(ctx, "a@x.com", "pw")
		requireAPIError(t, err, http.StatusBadRequest, "Invalid credentials")
	}
	_, err := c.Login(ctx, "a@x.com", "pw")
	requireAPIError(t, err, http.StatusTooManyRequests, "")
}

func TestRateLimitIgnoresForwardedFor(t *testing.T) {
	strict := func(trust bool) serverOption {
		return func(r *storehttp.Router) {
			r.Limits = storehttp.RateLimits{Strict: httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Hour, Burst: 1}}
			r.TrustProxyHeaders = trust
		}
	}
	login := func(t *testing.T, srv *testServer, xff string) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/auth/login",
			strings.NewReader(`{"email":"a@x.com","password":"pw"}`))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", xff)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("peer address by default", func(t *testing.T) {
		srv := newTestServer(t, strict(false))
		require.Equal(t, http.StatusBadRequest, login(t, srv, "203.0.113.1"))
		require.Equal(t, http.StatusTooManyRequests, login(t, srv, "203.0.113.2"))
	})

	t.Run("forwarded address behind a trusted proxy", func(t *testing.T) {
		srv := newTestServer(t, strict(true))
		require.Equal(t, http.StatusBadRequest, login(t, srv, "203.0.113.1"))
		require.Equal(t, http.StatusBadRequest, login(t, srv, "203.0.113.2"))
		require.Equal(t, http.StatusTooManyRequests, login(t, srv, "203.0.113.1"))
	})
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	ctx := t.Context()

	live, err := srv.client().GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := srv.client().GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestPanicIsRecovered(t *testing.T) {
	srv := newTestServer(t)
	srv.router.Mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})

	resp, err := http.Get(srv.URL + "/boom")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, httpx.ErrorBody{Error: "server_error", Message: "Something went wrong!"}, body)
}
