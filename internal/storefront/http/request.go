package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// decodeJSON reads a JSON object from the request body. An empty body
// decodes to the zero value so required-field checks report the field, not
// the body.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errBodyTooLarge
		}
		return err
	}
	return nil
}

// writeDecodeError answers a failed decodeJSON: 413 for an oversized body,
// 400 for anything else.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBodyTooLarge) {
		writeServiceError(w, r, err)
		return
	}
	writeBadRequest(w, "Invalid request body")
}
