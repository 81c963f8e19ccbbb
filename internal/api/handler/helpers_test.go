package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/bookhive/domains/internal/core"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unknown domain", pgx.ErrNoRows, http.StatusNotFound},
		{"wrapped no rows", errors.Join(errors.New("get custom domain x"), pgx.ErrNoRows), http.StatusNotFound},
		{"dns not configured", core.ErrDNSNotConfigured, http.StatusBadRequest},
		{"not registered", core.ErrNotRegistered, http.StatusBadRequest},
		{"registrar missing", core.ErrRegistrarNotConfigured, http.StatusInternalServerError},
		{"anything else", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
