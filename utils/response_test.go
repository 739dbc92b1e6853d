package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"campuskitchen/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithError(rec, 500, "Failed to fetch orders")

	assert.Equal(t, 500, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to fetch orders", body["error"])
}

func TestRespondWithAppError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithAppError(rec, apperr.Insufficient("InsufficientTokens", "Not enough tokens"))

	assert.Equal(t, 402, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "InsufficientTokens", body["reason"])
	assert.Equal(t, "Not enough tokens", body["error"])
}

func TestRespondWithJSONUsesM(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, 200, M{"ok": true, "count": 3})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, float64(3), body["count"])
}
