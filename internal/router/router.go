package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "billscan/docs"
	"billscan/internal/handler"
	"billscan/internal/middleware"
)

// Options carries the router's non-handler dependencies.
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	MaxUploadBytes int64
	Gatherer       prometheus.Gatherer
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(billH *handler.BillHandler, healthH *handler.HealthHandler, opts Options) *gin.Engine {
	r := gin.New()
	if opts.MaxUploadBytes > 0 {
		r.MaxMultipartMemory = opts.MaxUploadBytes
	}

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(opts.AllowedOrigins))

	// Health checks and operations
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(metricsHandler(opts.Gatherer)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Form target of the upload page
	r.POST("/upload", billH.Upload)

	v1 := r.Group("/api/v1")
	bills := v1.Group("/bills")
	bills.POST("/upload", billH.Upload)
	bills.GET("/:category", billH.List)
	bills.GET("/:category/export.xlsx", billH.ExportXLSX)
	bills.GET("/:category/export.csv", billH.ExportCSV)
	bills.GET("/:category/:id", billH.GetByID)

	return r
}

func metricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
