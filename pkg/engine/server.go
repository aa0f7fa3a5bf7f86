package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/mockserver/pkg/logging"
	"github.com/getmockd/mockserver/pkg/metrics"
)

// ShutdownTimeout bounds how long Stop waits for in-flight requests.
const ShutdownTimeout = 5 * time.Second

// ServerConfig holds the listener settings of a Server.
type ServerConfig struct {
	// Host is the interface to bind; empty binds all interfaces.
	Host string
	// Port is the mock listener port. 0 picks a free port.
	Port int
	// MetricsPort serves /metrics and /health when > 0.
	MetricsPort int
	// ReadTimeout and WriteTimeout are applied to the mock listener; zero
	// disables them.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server runs a Handler on an HTTP listener.
type Server struct {
	cfg     ServerConfig
	handler http.Handler
	metrics *metrics.Metrics
	log     *slog.Logger

	mu            sync.Mutex
	httpServer    *http.Server
	metricsServer *http.Server
	addr          net.Addr
	metricsAddr   net.Addr
	running       bool
	startTime     time.Time
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) ServerOption {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithMetrics serves m on the metrics listener.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewServer creates a Server for handler.
func NewServer(cfg ServerConfig, handler http.Handler, opts ...ServerOption) *Server {
	s := &Server{
		cfg:     cfg,
		handler: handler,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start binds the listeners and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port)))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", s.cfg.Port, err)
	}
	s.addr = ln.Addr()
	s.httpServer = &http.Server{
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	if s.cfg.MetricsPort > 0 {
		mln, err := net.Listen("tcp", net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.MetricsPort)))
		if err != nil {
			_ = ln.Close()
			return fmt.Errorf("failed to listen on metrics port %d: %w", s.cfg.MetricsPort, err)
		}
		s.metricsAddr = mln.Addr()
		s.metricsServer = &http.Server{
			Handler:           s.metricsMux(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go s.serve(s.metricsServer, mln, "metrics")
		s.log.Info("serving metrics", "addr", s.metricsAddr.String())
	}

	go s.serve(s.httpServer, ln, "HTTP")

	s.running = true
	s.startTime = time.Now()
	s.log.Info("mock server started", "addr", s.addr.String())
	return nil
}

func (s *Server) serve(srv *http.Server, ln net.Listener, name string) {
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.log.Error(name+" server error", "error", err)
	}
}

func (s *Server) metricsMux() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Stop gracefully shuts down the server, letting delayed responses finish
// within ShutdownTimeout.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	var errs []error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics shutdown: %w", err))
		}
	}

	s.running = false
	s.log.Info("mock server stopped", "uptime", time.Since(s.startTime).Round(time.Second))
	return errors.Join(errs...)
}

// Addr returns the bound mock listener address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.addr == nil {
		return ""
	}
	return s.addr.String()
}

// MetricsAddr returns the bound metrics listener address, or "" when
// metrics are disabled.
func (s *Server) MetricsAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metricsAddr == nil {
		return ""
	}
	return s.metricsAddr.String()
}

// IsRunning reports whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Uptime returns how long the server has been running.
func (s *Server) Uptime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	return time.Since(s.startTime)
}
