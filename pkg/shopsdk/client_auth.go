package shopsdk

import (
	"context"
	"net/http"
)

// SendOTP asks the server to email a one-time code to email.
func (c *Client) SendOTP(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/send-otp", SendOTPRequest{Email: email}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP submits the code delivered to email.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*MessageResponse, error) {
	var out MessageResponse
	req := VerifyOTPRequest{Email: email, OTP: otp}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-otp", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register sets the password and mobile of a verified email.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var out LoginResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", req, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the token holder. Requires WithToken.
func (c *Client) Me(ctx context.Context) (*UserProfile, error) {
	var out UserProfile
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
