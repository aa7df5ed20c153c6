package restapi

import (
	"net/http/pprof"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// swaggerSpecRoute is where the OpenAPI document is served.
const swaggerSpecRoute = "/docs/swagger.yaml"

// RouterOptions configures optional routes and middleware.
type RouterOptions struct {
	Logger *zap.Logger
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// SwaggerPath is the swagger.yaml file on disk; empty disables the UI.
	SwaggerPath string
	Pprof       bool
}

// SetupRouter настраивает и возвращает экземпляр Gin роутера.
func SetupRouter(previewHandler *PreviewHandler, opts RouterOptions) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", HeaderRequestID}
	corsConfig.ExposeHeaders = []string{HeaderRequestID}
	router.Use(cors.New(corsConfig))

	router.Use(RequestIDMiddleware())
	router.Use(ZapLoggerMiddleware(opts.Logger))
	router.Use(gin.Recovery())

	// Группа для API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/previews", previewHandler.CreatePreview)
		v1.GET("/pills", previewHandler.GetPill)
		v1.GET("/networks", previewHandler.ListNetworks)
	}

	router.GET("/healthz", previewHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))

	if opts.SwaggerPath != "" {
		router.StaticFile(swaggerSpecRoute, opts.SwaggerPath)
		swaggerURL := ginSwagger.URL(swaggerSpecRoute)
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, swaggerURL))
	}

	if opts.Pprof {
		pprofRouter := router.Group("/debug/pprof")
		{
			pprofRouter.GET("/", gin.WrapF(pprof.Index))
			pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
			pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
			pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.POST("/symbol", gin.WrapF(pprof.Symbol))
			pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
			pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
			pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		}
	}

	return router
}
