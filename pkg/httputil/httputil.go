// Package httputil holds the small JSON helpers every handler uses.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ekoshield/pkg/apierrors"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps a coded error onto an HTTP error response. Internal errors
// omit the description so infrastructure details never leak to clients.
func WriteError(w http.ResponseWriter, err error) {
	code := apierrors.CodeOf(err)
	body := map[string]string{"error": string(code)}
	if code != apierrors.CodeInternal {
		if msg := apierrors.MessageOf(err); msg != "" {
			body["error_description"] = msg
		}
	}
	WriteJSON(w, apierrors.HTTPStatus(code), body)
}

// Decode parses the request body into T. On failure it writes a bad_request
// response and returns ok=false; the handler should simply return.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(r.Context(), "failed to decode request body", "error", err)
		}
		WriteError(w, apierrors.New(apierrors.CodeBadRequest, "invalid JSON body"))
		return req, false
	}
	return req, true
}
