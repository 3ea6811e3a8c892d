package shopsdk

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorParsing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/verify-otp":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_otp","message":"Invalid OTP"}`))
		case "/api/products/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"not_found","message":"Product not found"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream down"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	_, err := c.VerifyOTP(ctx, "a@x.com", "000000")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, "invalid_otp", apiErr.Code)
	require.Equal(t, "Invalid OTP", apiErr.Message)

	_, err = c.GetProduct(ctx, "missing")
	require.True(t, IsNotFound(err))

	_, err = c.ListProducts(ctx)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "server_error", apiErr.Code)
}

func TestWithTokenSendsBearer(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(UserProfile{ID: "u1", Email: "a@x.com"})
	}))
	defer srv.Close()

	base := NewClient(srv.URL + "/")
	authed := base.WithToken("tok")
	require.Empty(t, base.Token())

	me, err := authed.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer tok", got)
	require.Equal(t, "a@x.com", me.Email)
}

func TestProductFormEncoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "Lamp", r.FormValue("name"))
		require.Equal(t, "19.95", r.FormValue("price"))
		require.Equal(t, "3", r.FormValue("quantity"))
		require.Equal(t, `["LED","Dimmable"]`, r.FormValue("features"))
		_, hasDesc := r.MultipartForm.Value["description"]
		require.False(t, hasDesc)

		files := r.MultipartForm.File["images"]
		require.Len(t, files, 2)
		f, err := files[1].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		require.Equal(t, "two", string(data))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Product{ID: "p1", Name: "Lamp"})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).CreateProduct(context.Background(), ProductForm{
		Name:     String("Lamp"),
		Price:    Float(19.95),
		Quantity: Int(3),
		Features: []string{"LED", "Dimmable"},
		Images:   []File{{Name: "1.png", Data: []byte("one")}, {Name: "2.png", Data: []byte("two")}},
	})
	require.NoError(t, err)
	require.Equal(t, "p1", p.ID)
}
