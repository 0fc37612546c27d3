// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-19
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBind            = "127.0.0.1"
	DefaultPort            = 8000
	DefaultStaticDir       = "src"
	DefaultShutdownTimeout = time.Second

	readHeaderTimeout = 10 * time.Second
)

// Config holds server configuration. It is read once by New.
type Config struct {
	Bind            string
	Port            int
	StaticDir       string
	LogFile         string
	ShutdownTimeout time.Duration

	// Logger receives access and error entries. Defaults to logrus.StandardLogger.
	Logger *logrus.Logger
	// Stdout receives the startup announcement. Defaults to os.Stdout.
	Stdout io.Writer
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg       Config
	router    *chi.Mux
	log       *logrus.Logger
	accessLog *logrus.Logger
	closers   []io.Closer
	closeOnce sync.Once

	ready chan struct{}
	mu    sync.Mutex
	bound net.Addr
}

// New returns an initialized server.
func New(cfg Config) (*Server, error) {
	if cfg.Bind == "" {
		cfg.Bind = DefaultBind
	}
	if cfg.StaticDir == "" {
		cfg.StaticDir = DefaultStaticDir
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	s := &Server{
		cfg:       cfg,
		router:    chi.NewRouter(),
		log:       cfg.Logger,
		accessLog: cfg.Logger,
		ready:     make(chan struct{}),
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open access log: %w", err)
		}
		s.accessLog = &logrus.Logger{
			Out:       f,
			Formatter: &logrus.JSONFormatter{},
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		}
		s.closers = append(s.closers, f)
	}
	s.initRoutes()
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the configured listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port))
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// ListenAddr returns the bound address, or nil before Ready.
func (s *Server) ListenAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Start binds the listener, announces it on stdout and serves until ctx is
// done. A clean stop returns http.ErrServerClosed. Start may be called once.
func (s *Server) Start(ctx context.Context) error {
	defer s.Close()

	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr(), err)
	}

	errorLog := s.log.WriterLevel(logrus.DebugLevel)
	defer errorLog.Close()
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          log.New(errorLog, "", 0),
	}

	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		ctxTo, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctxTo); err != nil {
			s.log.WithError(err).Warn("shutdown incomplete, closing connections")
			srv.Close()
		}
	}()

	s.mu.Lock()
	s.bound = ln.Addr()
	s.mu.Unlock()
	fmt.Fprintf(s.cfg.Stdout, "Serving at http://%s\n", ln.Addr())
	close(s.ready)
	s.log.WithField("root", s.cfg.StaticDir).Debug("accepting connections")

	err = srv.Serve(ln)
	close(done)
	<-stopped
	if errors.Is(err, http.ErrServerClosed) {
		s.log.Info("server stopped")
	}
	return err
}

// Close releases the access log file. Start calls it on return; it is safe to
// call again.
func (s *Server) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, c := range s.closers {
			if cerr := c.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}
	})
	return err
}
