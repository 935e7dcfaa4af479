package router

import (
	"fmt"
	"net/http"

	"github.com/siva9346/formating-app/internal/menu"
	"github.com/siva9346/formating-app/internal/middleware"
	"github.com/siva9346/formating-app/internal/web"
	"github.com/siva9346/formating-app/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Options struct {
	ServiceName    string
	AllowedOrigins []string
}

// NewRouter builds the HTTP surface: upload and listing pages, the process
// API, health and metrics.
func NewRouter(menuService *menu.Service, opts Options) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		gin.CustomRecovery(recoverJSON),
		middleware.RequestID(),
		middleware.Trace(opts.ServiceName),
		middleware.TraceContext(),
		middleware.Metrics(),
		middleware.AccessLog(),
		middleware.CORS(opts.AllowedOrigins),
	)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	menuHandler := menu.NewHandler(menuService)

	// ───────────────────────── PAGES ─────────────────────────
	r.GET("/", menuHandler.UploadPage)
	r.GET("/menu", menuHandler.MenuPage)

	// ───────────────────────── API ─────────────────────────
	api := r.Group("/api")
	{
		api.POST("/process", menuHandler.Process)
		api.GET("/menu-items", menuHandler.List)
	}

	// ───────────────────────── OPS ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r, nil
}

// recoverJSON answers a panic with the same {"error": ...} body as any other
// handler failure.
func recoverJSON(c *gin.Context, recovered any) {
	err := fmt.Errorf("panic: %v", recovered)
	logger.Error(c.Request.Context(), "handler panicked", err, "path", c.FullPath())
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
