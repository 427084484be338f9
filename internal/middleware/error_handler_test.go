package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/velamo/remitroute/internal/service"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no corridor", service.ErrNoCorridor, http.StatusNotFound},
		{"amount outside limits", service.ErrAmountOutsideLimits, http.StatusUnprocessableEntity},
		{"no viable candidates", service.ErrNoViableCandidates, http.StatusUnprocessableEntity},
		{"quote not found", service.ErrQuoteNotFound, http.StatusNotFound},
		{"quote expired", service.ErrQuoteExpired, http.StatusGone},
		{"route not in quote", service.ErrRouteNotInQuote, http.StatusBadRequest},
		{"already executed", service.ErrQuoteAlreadyExecuted, http.StatusConflict},
		{"capacity gone", service.ErrCapacityGone, http.StatusConflict},
		{"upstream unavailable", service.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{"wrapped upstream", fmt.Errorf("%w: dial tcp: refused", service.ErrUpstreamUnavailable), http.StatusServiceUnavailable},
		{"pgx no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest},
		{"check violation", &pgconn.PgError{Code: "23514"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(service.ErrQuoteExpired)
	})
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusGone, w.Code)
	assert.Contains(t, w.Body.String(), "expired")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
