package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"foundly/internal/apperr"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// jsonAppError maps a classified error to a JSON error response, logging
// store failures without exposing them.
func jsonAppError(w http.ResponseWriter, err error) {
	if apperr.KindOf(err) == apperr.Store {
		slog.Error("request failed", "error", err)
	}
	jsonError(w, apperr.Status(err), apperr.Message(err))
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
