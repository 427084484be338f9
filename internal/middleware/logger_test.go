package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"

	"github.com/velamo/remitroute/internal/service"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logger())
	router.Use(ErrorHandler())
	router.GET("/api/v1/quotes/:id", func(c *gin.Context) {
		c.Error(service.ErrQuoteNotFound)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/quotes/q-123", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	logged := buf.String()
	assert.Contains(t, logged, `"quote_id":"q-123"`)
	assert.Contains(t, logged, `"status":404`)
	assert.Contains(t, logged, "quote not found")
}
