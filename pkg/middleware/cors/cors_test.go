package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/course-api/pkg/config"
)

func serve(cfg config.CORSConfig, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(cfg))
	r.GET("/teachers", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(method, "/teachers", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsListedOrigin(t *testing.T) {
	rec := serve(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com/"}}, http.MethodGet, "https://app.example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	rec := serve(config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}, http.MethodGet, "https://evil.example.com")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	rec := serve(config.CORSConfig{}, http.MethodOptions, "https://any.example.com")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://any.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
