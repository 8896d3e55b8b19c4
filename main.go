package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-claims-templui/internal/pkg/config"
	"github.com/FACorreiaa/go-claims-templui/internal/pkg/logger"
	"github.com/FACorreiaa/go-claims-templui/internal/server"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	encoding := "console"
	if cfg.IsProduction() {
		encoding = "json"
	}
	zl, err := logger.New(cfg.LogLevel, encoding, zap.String("service", cfg.Observability.ServiceName))
	if err != nil {
		return err
	}
	defer func() { _ = zl.Sync() }()

	otelShutdown, err := server.InitObservability(cfg.Observability, version, zl)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			zl.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv, err := server.New(cfg, zl)
	if err != nil {
		return err
	}
	srv.SetRouter(server.SetupRouter(cfg, srv.Dependencies(), zl))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.EnablePprof {
		pprofServer := server.StartPprofServer(cfg.Observability.PprofAddr, zl)
		pprofDone := make(chan struct{})
		go server.GracefulShutdown(ctx, pprofServer, 2*time.Second, zl, pprofDone)
	}

	httpServer := srv.HTTPServer()
	done := make(chan struct{})
	go server.GracefulShutdown(ctx, httpServer, 10*time.Second, zl, done)

	zl.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("version", version))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Error("Server error", zap.Error(err))
		stop()
	}

	<-done
	zl.Info("Graceful shutdown complete")
	return nil
}
