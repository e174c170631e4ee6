// =============================
// File: internal/api/server.go
// =============================
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/engine"
)

// Server exposes the trading engine over HTTP.
type Server struct {
	engine *engine.Engine
	logger *zap.Logger
	router *gin.Engine
	http   *http.Server
}

func NewServer(e *engine.Engine, logger *zap.Logger, metricsEnabled bool) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{engine: e, logger: logger, router: router}

	if metricsEnabled {
		router.Use(metricsMiddleware())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
	router.GET("/health", s.health)

	v1 := router.Group("/v1")
	{
		v1.POST("/curves", s.initializeCurve)
		v1.GET("/curves/:mint", s.getCurve)
		v1.GET("/curves/:mint/quote", s.quote)
		v1.POST("/curves/:mint/buy", s.buy)
		v1.POST("/curves/:mint/sell", s.sell)
		v1.PUT("/curves/:mint/parameters", s.updateParameters)
	}

	return s
}

// Handler returns the routing entrypoint, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", addr))
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
