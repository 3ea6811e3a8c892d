package shopsdk

import "time"

// ============================================================================
// Common
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is the machine readable code (e.g. "invalid_otp")
	Error string `json:"error"`

	// Message is a human readable description
	Message string `json:"message"`
}

// MessageResponse acknowledges a request that returns no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// ============================================================================
// Auth
// ============================================================================

type SendOTPRequest struct {
	Email string `json:"email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Mobile          string `json:"mobile"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserProfile is the public view of an account.
type UserProfile struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Mobile string `json:"mobile"`
}

// LoginResponse carries the session token and the caller's profile.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// ============================================================================
// Catalogue
// ============================================================================

type Category struct {
	ID           string    `json:"id"`
	CategoryName string    `json:"CategoryName"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	Icon         string    `json:"icon"`
	Emoji        string    `json:"emoji"`
	Slug         string    `json:"slug"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Product struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Quantity     int       `json:"quantity"`
	Category     string    `json:"category"`
	CategoryName string    `json:"categoryName"`
	ImageURLs    []string  `json:"imageUrls"`
	Features     []string  `json:"features"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProductCountRequest adjusts a category's product count by Increment,
// which may be negative.
type ProductCountRequest struct {
	Increment int `json:"increment"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	// Database is "ok" or an error description
	Database string `json:"database"`
}
