package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", NewConflict("dup"), http.StatusConflict},
		{"not found", NewNotFound("missing"), http.StatusNotFound},
		{"validation", NewValidation("bad"), http.StatusBadRequest},
		{"max fields", NewMaxAllowedFieldsExceeded("too many"), http.StatusRequestEntityTooLarge},
		{"wrapped", fmt.Errorf("saving: %w", NewConflict("dup")), http.StatusConflict},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestWithMeta(t *testing.T) {
	err := NewConflict("Parameters contain duplicates").WithMeta("currency", "USD")
	assert.Equal(t, "USD", err.Meta["currency"])
	assert.True(t, IsConflict(err))
	assert.False(t, IsNotFound(err))
}
