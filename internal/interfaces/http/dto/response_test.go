package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseEnvelopes(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		resp := NewSuccessResponse(map[string]string{"number": "V-2026-00001"})
		assert.True(t, resp.Success)
		assert.NotNil(t, resp.Data)
		assert.Nil(t, resp.Error)
	})

	t.Run("error", func(t *testing.T) {
		resp := NewErrorResponse("INSUFFICIENT_STOCK", "requested 3, available 2")
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Data)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	})
}

func TestGetHTTPStatus(t *testing.T) {
	cases := []struct {
		code   string
		status int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusConflict},
		{"DUPLICATE_BASKET", http.StatusConflict},
		{"CONCURRENCY_CONFLICT", http.StatusConflict},
		{"PRICING_AUTH_REQUIRED", http.StatusForbidden},
		{"PRICING_AUTH_DENIED", http.StatusForbidden},
		{"INSUFFICIENT_STOCK", http.StatusUnprocessableEntity},
		{"SERIALIZED_MISMATCH", http.StatusUnprocessableEntity},
		{"CREDIT_REJECTED", http.StatusUnprocessableEntity},
		{"NO_OPEN_SESSION", http.StatusUnprocessableEntity},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"STORAGE_FAILURE", http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"INVALID_PAYMENT", http.StatusBadRequest},
	}

	for _, tc := range cases {
		name := tc.code
		if name == "" {
			name = "unknown"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.status, GetHTTPStatus(tc.code))
		})
	}
}
