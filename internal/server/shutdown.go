package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// GracefulShutdown waits for ctx to be cancelled, then gives in-flight
// requests up to timeout to finish. done is closed when the server has stopped.
func GracefulShutdown(ctx context.Context, srv *http.Server, timeout time.Duration, logger *zap.Logger, done chan<- struct{}) {
	defer close(done)

	<-ctx.Done()
	logger.Info("Shutting down gracefully, press Ctrl+C again to force")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
