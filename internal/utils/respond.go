package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskdesk/internal/apperr"
)

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// Fail translates an error kind to its transport status. Validation
// errors carry the field map; anything unrecognized is a 500 with a
// generic body.
func Fail(w http.ResponseWriter, err error) {
	var v apperr.Validation
	switch {
	case errors.As(err, &v):
		JSON(w, http.StatusBadRequest, map[string]any{"error": "validation failed", "fields": v.Fields})
	case errors.Is(err, apperr.ErrValidation):
		Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "authentication required")
	case errors.Is(err, apperr.ErrForbidden):
		Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, apperr.ErrNotFound):
		Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, apperr.ErrIntegrity):
		Error(w, http.StatusConflict, err.Error())
	default:
		Error(w, http.StatusInternalServerError, "internal error")
	}
}
