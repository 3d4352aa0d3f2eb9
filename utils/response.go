package utils

import (
	"encoding/json"
	"net/http"

	"devhub/apperr"

	"go.uber.org/zap"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// DecodeJSON reads a JSON body into dst, rejecting unknown fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// RespondWithAppError answers with the status apperr assigns to err. Internal
// failures are logged and hidden from the caller.
func RespondWithAppError(w http.ResponseWriter, log *zap.Logger, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.Error(err))
		RespondWithError(w, status, "Internal Server Error")
		return
	}
	RespondWithError(w, status, err.Error())
}
