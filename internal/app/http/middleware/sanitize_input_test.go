package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanitizedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		body, _ := io.ReadAll(c.Request.Body)
		c.Data(http.StatusOK, "application/json", body)
	})
	r.GET("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestSanitizeAndCleanInputMiddleware(t *testing.T) {
	t.Run("strips markup from string fields", func(t *testing.T) {
		r := sanitizedRouter()
		req := httptest.NewRequest(http.MethodPost, "/echo",
			bytes.NewReader([]byte(`{"name":"<script>alert(1)</script>Bob","count":2}`)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), "<script>")
		assert.Contains(t, rec.Body.String(), "Bob")
		assert.Contains(t, rec.Body.String(), `"count":2`)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		r := sanitizedRouter()
		req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader([]byte(`{"name":`)))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ignores non-mutating methods", func(t *testing.T) {
		r := sanitizedRouter()
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
