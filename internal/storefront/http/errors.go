package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

const msgServerError = "Something went wrong!"

var errBodyTooLarge = errors.New("request body too large")

// writeServiceError maps a service error to its HTTP response. Anything
// unrecognised is logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError

	switch {
	// auth
	case errors.Is(err, service.ErrEmailRequired):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Email is required")
	case errors.Is(err, service.ErrInvalidOTP):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidOTP, "Invalid OTP")
	case errors.Is(err, service.ErrUserNotFound):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodePrecondition, "User not found. Verify email first.")
	case errors.Is(err, service.ErrEmailNotVerified):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodePrecondition, "Email not verified")
	case errors.Is(err, service.ErrPasswordMismatch):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodePrecondition, "Passwords do not match")
	case errors.Is(err, service.ErrPasswordRequired):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Password is required")
	case errors.Is(err, service.ErrPasswordTooLong):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Password must be at most 72 bytes")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidLogin, "Invalid credentials")

	// catalogue
	case errors.Is(err, service.ErrCategoryNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, "Category not found")
	case errors.Is(err, service.ErrProductNotFound):
		httpx.WriteError(w, http.StatusNotFound, httpx.ErrCodeNotFound, "Product not found")
	case errors.Is(err, service.ErrCategoryNameRequired):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Category name is required")
	case errors.Is(err, service.ErrCategoryExists):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeConflict, "Category with this name already exists")
	case errors.Is(err, service.ErrTooManyImages):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest,
			fmt.Sprintf("A product can have at most %d images", domain.MaxProductImages))
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, ve.Field+" "+ve.Message)

	// transport
	case errors.Is(err, media.ErrNotImage):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "Please upload an image file")
	case errors.Is(err, media.ErrTooLarge):
		httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, "File too large")
	case errors.Is(err, errBodyTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, httpx.ErrCodeInvalidRequest, "Request body too large")

	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, httpx.ErrCodeServerError, msgServerError)
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	httpx.WriteError(w, http.StatusBadRequest, httpx.ErrCodeInvalidRequest, msg)
}
