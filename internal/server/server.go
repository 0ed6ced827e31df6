// Package server exposes the browser over HTTP: a page shell plus the two
// fragment routes the shell swaps into its display regions.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"emperror.dev/errors"
	"github.com/gorilla/handlers"
	"github.com/sirupsen/logrus"

	"github.com/naka-gawa/repo-browser/internal/render"
	"github.com/naka-gawa/repo-browser/internal/usecase"
)

// Server represents the browser's web server.
type Server struct {
	logger    *logrus.Logger
	server    *http.Server
	accessLog io.WriteCloser
}

// NewServer wires the routes, access logging and panic recovery.
func NewServer(addr string, browser *usecase.Browser, renderer *render.Renderer, logger *logrus.Logger) *Server {
	h := NewHandler(browser, renderer, logger)
	accessLog := logger.WriterLevel(logrus.InfoLevel)

	return &Server{
		logger:    logger,
		accessLog: accessLog,
		server: &http.Server{
			Addr:         addr,
			Handler:      handlers.CombinedLoggingHandler(accessLog, createRouter(h, logger)),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler returns the root handler, including access logging.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Infof("Starting HTTP server on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server failed")
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	defer s.accessLog.Close()
	return s.server.Shutdown(ctx)
}
