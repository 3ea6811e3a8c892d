package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes used in ErrorBody.Error.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidOTP     = "invalid_otp"
	ErrCodePrecondition   = "precondition_failed"
	ErrCodeInvalidLogin   = "invalid_credentials"
	ErrCodeInvalidToken   = "invalid_token"
	ErrCodeNotFound       = "not_found"
	ErrCodeConflict       = "already_exists"
	ErrCodeRateLimited    = "rate_limit_exceeded"
	ErrCodeServerError    = "server_error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MessageBody is the JSON shape of plain acknowledgements.
type MessageBody struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes an ErrorBody.
func WriteError(w http.ResponseWriter, code int, errCode, message string) {
	WriteJSON(w, code, ErrorBody{Error: errCode, Message: message})
}

// WriteMessage writes a MessageBody.
func WriteMessage(w http.ResponseWriter, code int, message string) {
	WriteJSON(w, code, MessageBody{Message: message})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
