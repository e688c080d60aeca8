package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"munidocs/internal/handler"
	"munidocs/internal/middleware"
	"munidocs/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Generation *handler.GenerationHandler
	Document   *handler.DocumentHandler
	Usage      *handler.UsageHandler
	UserConfig *handler.UserConfigHandler
	Normativa  *handler.NormativaHandler
	Health     *handler.HealthHandler
}

// Options holds router settings taken from configuration.
type Options struct {
	ServiceName    string
	AllowedOrigins []string
	Tracing        bool
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, opts Options, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.Tracing {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(middleware.Logger(log))

	// Health and metrics
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	v1.GET("/document-types", h.Generation.DocumentTypes)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/generate/:type", h.Generation.Generate)

	docs := protected.Group("/documents")
	docs.GET("", h.Document.List)
	docs.GET("/:id", h.Document.GetByID)
	docs.PUT("/:id", h.Document.Update)
	docs.GET("/:id/export", h.Document.Export)
	docs.POST("/:id/archive", h.Document.Archive)

	usage := protected.Group("/usage")
	usage.GET("/transactions", h.Usage.Transactions)
	usage.GET("/summary", h.Usage.Summary)
	usage.GET("/export", h.Usage.Export)

	me := protected.Group("/me")
	me.GET("/config", h.UserConfig.Get)
	me.PUT("/config", h.UserConfig.Update)

	protected.GET("/normativa", h.Normativa.List)

	return r
}
