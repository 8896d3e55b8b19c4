package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer serves the profiling endpoints on their own listener.
// It must only be bound to an internal address.
func StartPprofServer(addr string, logger *zap.Logger) *http.Server {
	pprofRouter := gin.New()
	pprof.Register(pprofRouter)

	srv := &http.Server{
		Addr:              addr,
		Handler:           pprofRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Starting pprof server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server stopped", zap.Error(err))
		}
	}()
	return srv
}
