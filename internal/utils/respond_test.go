package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdesk/internal/apperr"
)

func TestFailStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperr.NotFoundf("task x"), http.StatusNotFound},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{"integrity", apperr.Integrityf("tasks_request_id_key"), http.StatusConflict},
		{"validation", apperr.Invalid("name", "is required"), http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestFailValidationCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, apperr.Validation{Fields: map[string]string{"category": "unknown category"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "unknown category", body.Fields["category"])
}

func TestFailHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, errors.New("pq: connection refused"))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
