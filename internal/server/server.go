// Package server exposes the agent over HTTP: a JSON message endpoint, an
// action listing and a WebSocket chat stream.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/navid-fn/dexscout/internal/agent"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	agent  *agent.Agent
	logger *logrus.Logger
	engine *gin.Engine
}

func New(ag *agent.Agent, logger *logrus.Logger) *Server {
	s := &Server{agent: ag, logger: logger, engine: gin.Default()}

	s.engine.GET("/healthz", s.health)
	api := s.engine.Group("/v1")
	{
		api.POST("/message", s.postMessage)
		api.GET("/actions", s.listActions)
		api.GET("/ws", s.chatSocket)
	}

	return s
}

// Run serves on addr until ctx is cancelled, then drains with a short
// shutdown timeout.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Infof("http: listening on %s", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http: shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
