package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"edusignal-hq/veritas/pkg/audit/recorder"
	"edusignal-hq/veritas/pkg/config"
	"edusignal-hq/veritas/pkg/detector"
	"edusignal-hq/veritas/pkg/server/handlers"
	"edusignal-hq/veritas/pkg/server/middleware"
	"edusignal-hq/veritas/pkg/telemetry/health"
	"edusignal-hq/veritas/pkg/telemetry/metrics"
	"edusignal-hq/veritas/pkg/telemetry/tracing"
)

// Dependencies carries the wired components the server exposes over HTTP.
// Collector, Checker, and Auditor may be nil; the corresponding routes or
// behaviors are simply absent.
type Dependencies struct {
	Detector  *detector.Detector
	Collector *metrics.Collector
	Checker   *health.Checker
	Auditor   *recorder.Recorder
	Tracer    *tracing.Tracer
	Logger    *slog.Logger

	// Build information for the /version endpoint.
	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP server for the analysis API.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	logger       *slog.Logger
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates the server. Deps.Detector and Deps.Logger are required.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		config:       cfg,
		deps:         deps,
		logger:       logger.With("component", "server"),
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown is requested
// through the context, Stop, or a listener error.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	tlsEnabled := s.config.Security.TLS.Enabled
	if tlsEnabled {
		tlsConfig, err := s.configureTLS()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting analysis server",
			"address", s.config.Server.ListenAddress,
			"tls_enabled", tlsEnabled,
		)

		var err error
		if tlsEnabled {
			err = s.httpServer.ListenAndServeTLS(
				s.config.Security.TLS.CertFile,
				s.config.Security.TLS.KeyFile,
			)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Stop requests a graceful shutdown of a running server.
func (s *Server) Stop() {
	s.shutdownOnce.Do(func() {
		close(s.shutdownChan)
	})
}

// Shutdown gracefully shuts down the server, waiting up to ShutdownTimeout
// for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	s.logger.Info("initiating graceful shutdown",
		"timeout", s.config.Server.ShutdownTimeout.String(),
	)

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	var shutdownErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error during server shutdown", "error", err)
			shutdownErr = fmt.Errorf("server shutdown error: %w", err)
		}
	}

	s.mu.Lock()
	s.isRunning = false
	s.mu.Unlock()

	s.logger.Info("analysis server stopped")

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	analyzeHandler := handlers.NewAnalyzeHandler(
		s.deps.Detector,
		&s.config.Detector,
		s.config.Server.MaxBodyBytes,
		s.deps.Logger,
		s.deps.Collector,
		s.deps.Auditor,
		s.deps.Tracer,
	)

	mux.Handle("/v1/analyze", analyzeHandler)
	mux.HandleFunc("/", handlers.IndexHandler())

	if s.deps.Checker != nil && s.config.Telemetry.Health.Enabled {
		mux.HandleFunc(s.config.Telemetry.Health.LivenessPath, s.deps.Checker.LivenessHandler())
		mux.HandleFunc(s.config.Telemetry.Health.ReadinessPath, s.deps.Checker.ReadinessHandler())
		mux.HandleFunc(s.config.Telemetry.Health.VersionPath,
			health.VersionHandler(s.deps.Version, s.deps.Commit, s.deps.BuildTime))
	}

	if s.deps.Collector != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.deps.Collector.Handler())
	}

	// Middleware chain, innermost first
	var handler http.Handler = mux
	handler = middleware.Timeout(s.config.Server.RequestTimeout)(handler)
	handler = middleware.CORS(&s.config.Server.CORS)(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(s.deps.Logger)(handler)
	handler = middleware.Recovery(s.deps.Logger)(handler)

	return handler
}

// configureTLS builds the TLS settings for the listener.
func (s *Server) configureTLS() (*tls.Config, error) {
	tlsCfg := s.config.Security.TLS

	if tlsCfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if tlsCfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}

	if _, err := os.Stat(tlsCfg.CertFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS cert file not found: %s", tlsCfg.CertFile)
	}
	if _, err := os.Stat(tlsCfg.KeyFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS key file not found: %s", tlsCfg.KeyFile)
	}

	minVersion := uint16(tls.VersionTLS13)
	if tlsCfg.MinVersion == "1.2" {
		minVersion = tls.VersionTLS12
	}

	return &tls.Config{
		MinVersion: minVersion,
		CipherSuites: []uint16{
			tls.TLS_AES_128_GCM_SHA256,
			tls.TLS_AES_256_GCM_SHA384,
			tls.TLS_CHACHA20_POLY1305_SHA256,
		},
	}, nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}
