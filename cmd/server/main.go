package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"billscan/internal/app"
	"billscan/internal/config"
	"billscan/internal/handler"
	"billscan/internal/logger"
	"billscan/internal/router"
	"billscan/internal/service"
)

// @title billscan API
// @version 1.0
// @description Extracts structured details from electricity and water bill PDFs.
// @BasePath /api/v1
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync(zl)
	zap.ReplaceGlobals(zl)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, zl)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() { _ = a.Close() }()

	maxUpload := cfg.Server.MaxUploadSizeMB * 1024 * 1024

	var archive service.DocumentArchive
	if a.Archive != nil {
		archive = a.Archive
	}
	billSvc := service.NewBillService(a.Pipeline, a.Bills, archive, service.BillServiceConfig{
		MaxUploadBytes: maxUpload,
	}, zl.Named("service"))

	billH := handler.NewBillHandler(billSvc, cfg.Server.SuccessRedirectURL)
	healthH := handler.NewHealthHandler(a.DB, cfg.DB.Driver)

	r := router.Setup(billH, healthH, router.Options{
		Logger:         zl.Named("http"),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: maxUpload,
		Gatherer:       a.Registry,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("Server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
