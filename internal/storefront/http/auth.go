package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleSendOTP godoc
//
//	@Summary		Send a one-time code
//	@Description	Finds or creates the account for email and emails it a fresh six digit code, replacing any pending one.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		shopsdk.SendOTPRequest	true	"email"
//	@Success		200		{object}	shopsdk.MessageResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Email is required"
//	@Failure		429		{object}	shopsdk.ErrorResponse
//	@Failure		500		{object}	shopsdk.ErrorResponse
//	@Router			/api/auth/send-otp [post].
func (h *AuthHandler) HandleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.SendOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if _, err := h.AuthService.SendOTP(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "OTP sent successfully")
}

// HandleVerifyOTP godoc
//
//	@Summary		Verify a one-time code
//	@Description	Marks the email verified when the code matches. Unknown emails and wrong codes get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		shopsdk.VerifyOTPRequest	true	"email and code"
//	@Success		200		{object}	shopsdk.MessageResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Invalid OTP"
//	@Failure		500		{object}	shopsdk.ErrorResponse
//	@Router			/api/auth/verify-otp [post].
func (h *AuthHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.VerifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if err := h.AuthService.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "Email verified successfully")
}

// HandleRegister godoc
//
//	@Summary		Complete registration
//	@Description	Sets the password and mobile of a verified email. Each failed precondition has its own message.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		shopsdk.RegisterRequest	true	"registration details"
//	@Success		200		{object}	shopsdk.MessageResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"User not found / Email not verified / Passwords do not match"
//	@Failure		500		{object}	shopsdk.ErrorResponse
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	err := h.AuthService.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Mobile:          req.Mobile,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteMessage(w, http.StatusOK, "User registered successfully")
}

// HandleLogin godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a 24 hour HS256 session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		shopsdk.LoginRequest	true	"credentials"
//	@Success		200		{object}	shopsdk.LoginResponse
//	@Failure		400		{object}	shopsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	shopsdk.ErrorResponse
//	@Failure		500		{object}	shopsdk.ErrorResponse
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, shopsdk.LoginResponse{
		Token: res.Token,
		User:  toProfile(res.User),
	})
}

// HandleMe godoc
//
//	@Summary		Current user
//	@Description	Returns the profile of the bearer token's subject.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	shopsdk.UserProfile
//	@Failure		401	{object}	shopsdk.ErrorResponse	"missing, invalid or expired token"
//	@Failure		404	{object}	shopsdk.ErrorResponse	"account no longer exists"
//	@Failure		500	{object}	shopsdk.ErrorResponse
//	@Router			/api/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID := httpx.UserIDFromContext(r.Context())
	if userID == "" {
		httpx.WriteError(w, http.StatusUnauthorized, httpx.ErrCodeInvalidToken, "missing bearer token")
		return
	}

	u, err := h.AuthService.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, "User not found")
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toProfile(u))
}
