package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simulation_preview/internal/app/service"
	"simulation_preview/internal/client"
	"simulation_preview/internal/infrastructure/configloader"
	"simulation_preview/internal/infrastructure/metrics"
	networkdefinition "simulation_preview/internal/infrastructure/network/definition"
	"simulation_preview/internal/infrastructure/restapi"
	"simulation_preview/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

func main() {
	cfgPath := configloader.PathFromEnv()
	cfg, err := configloader.Load(cfgPath)
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	}); err != nil {
		logrus.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	zapLogger := logger.Zap()
	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Configuration loaded", "path", cfgPath)

	previewMetrics := metrics.NewPreviewMetrics(prometheus.DefaultRegisterer)

	networkProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger, cfg.Preview.NativeBadgeImages)

	dexScreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		cfg.TokenPriceSvc.MaxTokensPerBatchRequest,
	)
	tokenPriceService := service.NewTokenPriceService(dexScreenerClient, appLogger, cfg.TokenPriceSvc)
	fiatService := service.NewFiatService(tokenPriceService, appLogger)
	previewService := service.NewPreviewService(networkProvider, fiatService, appLogger, previewMetrics, cfg.Preview)

	gin.SetMode(gin.ReleaseMode)
	routerOpts := restapi.RouterOptions{
		Logger:   zapLogger,
		Gatherer: prometheus.DefaultGatherer,
		Pprof:    cfg.Server.Pprof,
	}
	if cfg.Swagger.Enabled {
		routerOpts.SwaggerPath = cfg.Swagger.Path
		zapLogger.Info("Swagger UI enabled", zap.String("path", cfg.Swagger.Path))
	}
	router := restapi.SetupRouter(restapi.NewPreviewHandler(previewService, appLogger).WithMaxBodyBytes(cfg.Server.MaxBodyBytes), routerOpts)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		zapLogger.Info(fmt.Sprintf("Server starting on port %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	zapLogger.Info("Server exiting")
}
