package shopsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultAPIPrefix is where the server mounts its API routes.
const DefaultAPIPrefix = "/api"

// Client talks to a storefront server. The zero value is not usable; use
// NewClient.
type Client struct {
	BaseURL    string
	APIPrefix  string
	HTTPClient *http.Client

	token string
}

// NewClient returns an unauthenticated client for baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		APIPrefix: DefaultAPIPrefix,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a copy of c that sends token as a bearer credential.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// Token returns the bearer token attached to c, if any.
func (c *Client) Token() string { return c.token }

// String returns a pointer to s, for the optional fields of form types.
func String(s string) *string { return &s }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Int returns a pointer to i.
func Int(i int) *int { return &i }
