package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/DrSkyle/linkpath/pkg/engine"
	"github.com/DrSkyle/linkpath/pkg/version"
)

// RegisterRoutes mounts the query API under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/health", h.HandleHealth)
	rg.GET("/stats", h.HandleStats)
	rg.GET("/path", h.HandlePath)
	rg.GET("/length", h.HandleLength)
	rg.GET("/reach", h.HandleReach)
	rg.POST("/batch", h.HandleBatch)
}

// NewRouter builds the gin engine for eng: tracing, panic recovery, request
// logging, the v1 API and, when Prometheus is the exporter, /metrics.
func NewRouter(eng *engine.Engine) *gin.Engine {
	r := gin.New()
	r.Use(otelgin.Middleware(version.AppName))
	r.Use(gin.Recovery())
	r.Use(requestLogger(eng.Logger))

	RegisterRoutes(r.Group("/v1"), NewHandlers(eng))

	if mh := eng.MetricsHandler(); mh != nil {
		r.GET("/metrics", gin.WrapH(mh))
	}
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no route for " + c.Request.URL.Path})
	})
	return r
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.LogAttrs(c.Request.Context(), slog.LevelDebug, "Request handled",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}
