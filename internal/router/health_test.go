package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/siva9346/formating-app/internal/menu"

	"github.com/gin-gonic/gin"
)

func TestHealthCheck(t *testing.T) {
	// Arrange
	gin.SetMode(gin.TestMode)

	service := menu.NewService(menu.NewInMemoryRepository(), nil, nil)
	r, err := NewRouter(service, Options{ServiceName: "test"})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	// Act
	r.ServeHTTP(w, req)

	// Assert
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := menu.NewService(menu.NewInMemoryRepository(), nil, nil)
	r, err := NewRouter(service, Options{ServiceName: "test"})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestRecovery_PanicReturnsJSONError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := menu.NewService(menu.NewInMemoryRepository(), nil, nil)
	r, err := NewRouter(service, Options{ServiceName: "test"})
	if err != nil {
		t.Fatal(err)
	}
	r.GET("/boom", func(c *gin.Context) {
		panic("template exploded")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected json body, got %q", w.Body.String())
	}
	if body["error"] != "panic: template exploded" {
		t.Errorf("unexpected error message %q", body["error"])
	}
}
