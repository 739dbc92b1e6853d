package utils

import (
	"encoding/json"
	"net/http"

	"campuskitchen/apperr"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithAppError renders a typed error as {error, reason} so the UI can
// localize and style by reason code.
func RespondWithAppError(w http.ResponseWriter, err error) {
	ae := apperr.As(err)
	RespondWithJSON(w, apperr.Status(ae), map[string]string{
		"error":  ae.Title,
		"reason": ae.Reason,
		"detail": ae.Detail,
	})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}

func SendResponse(w http.ResponseWriter, status int, data any, message string, err error) {
	resp := map[string]any{
		"status":  status,
		"message": message,
		"data":    data,
	}
	if err != nil {
		resp["error"] = err.Error()
	}
	RespondWithJSON(w, status, resp)
}
