package middlewares

import (
	"PatientDesk/services"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serveError(err error) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/", func(c *gin.Context) { RespondError(c, err) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"not found", &services.NotFoundError{Resource: "Patient", ID: "p1"}, http.StatusNotFound, `{"error":"Patient not found with id: p1"}`},
		{"wrapped not found", fmt.Errorf("ctx: %w", &services.NotFoundError{Resource: "Appointment", ID: "a1"}), http.StatusNotFound, `{"error":"Appointment not found with id: a1"}`},
		{"validation", services.NewValidationError(errors.New("email: must be a valid email address.")), http.StatusBadRequest, `{"error":"email: must be a valid email address."}`},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"An unexpected error occurred"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serveError(tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestCorsMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CorsMiddleware(NewCorsConfig([]string{"http://localhost:5173"})))
	r.GET("/patients", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/patients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)

	req = httptest.NewRequest(http.MethodGet, "/patients", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiterMiddleware(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	get := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, get("10.0.0.1"))
	require.Equal(t, http.StatusOK, get("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, get("10.0.0.1"))
	assert.Equal(t, http.StatusOK, get("10.0.0.2"), "limits are per client")
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(LoggingMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusTeapot, "hi") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "hi", w.Body.String())
}
