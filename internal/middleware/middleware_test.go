package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siva9346/formating-app/pkg/logger"

	"github.com/gin-gonic/gin"
)

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handlers...)
	return router
}

// TestRequestID_Generated tests that a request id is minted when absent
func TestRequestID_Generated(t *testing.T) {
	var seen any
	router := newTestRouter(RequestID())
	router.GET("/test", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.RequestIDKey)
		c.JSON(http.StatusOK, gin.H{"message": "success"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	id := w.Header().Get(RequestIDHeader)
	if id == "" {
		t.Fatal("expected X-Request-ID response header")
	}
	if seen != id {
		t.Errorf("expected request id %q in context, got %v", id, seen)
	}
}

// TestRequestID_Propagated tests that an incoming request id is kept
func TestRequestID_Propagated(t *testing.T) {
	router := newTestRouter(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString("request_id")})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

// TestCORS_Preflight tests that configured origins pass preflight
func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(CORS([]string{"http://localhost:5173"}))
	router.POST("/api/process", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("OPTIONS", "/api/process", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("expected allowed origin header, got %q", got)
	}
}

// TestMetricsAndAccessLog_PassThrough tests that observability middleware
// does not alter responses
func TestMetricsAndAccessLog_PassThrough(t *testing.T) {
	router := newTestRouter(Metrics(), AccessLog())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusTeapot, gin.H{"message": "short and stout"})
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, w.Code)
	}
}
