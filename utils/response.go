package utils

import (
	"encoding/json"
	"net/http"

	"voyago/apperr"
)

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Success writes the standard envelope with success=true.
func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	resp := map[string]any{
		"success": true,
		"data":    data,
	}
	if message != "" {
		resp["message"] = message
	}
	RespondWithJSON(w, statusCode, resp)
}

// Fail writes the standard envelope for a classified error. The status
// code and public message come from the error's kind; internal causes are
// never serialized.
func Fail(w http.ResponseWriter, err error) {
	RespondWithJSON(w, apperr.Status(err), map[string]any{
		"success": false,
		"error":   apperr.PublicMessage(err),
	})
}

type M map[string]interface{}
