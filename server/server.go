package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/metrics"
	"github.com/hupe1980/eliza/session"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

//go:embed static
var staticFiles embed.FS

// Options configures a Server.
type Options struct {
	// Addr is the listen address (defaults to ":8080").
	Addr string
	// MaxSessions bounds the live sessions (session store default if zero).
	MaxSessions int
	// Registry receives the chat metrics and backs /metrics. A fresh
	// registry with Go runtime collectors is used when nil.
	Registry *prometheus.Registry
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Server serves chat sessions created by a session.Factory.
type Server struct {
	opts    Options
	store   *session.Store
	metrics *metrics.Metrics
	logger  logging.Logger
	handler http.Handler
	http    *http.Server

	mu       sync.Mutex
	listener net.Listener
	conns    map[*safeConn]struct{}
	closing  bool
	wg       sync.WaitGroup
}

// New creates a server whose sessions are driven by chatbots from factory.
func New(factory session.Factory, optFns ...func(o *Options)) (*Server, error) {
	opts := Options{Addr: ":8080", Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if sl, ok := opts.Logger.(*logging.StructuredLogger); ok {
		opts.Logger = sl.WithComponent("server")
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
		opts.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	m := metrics.MustNewMetrics(opts.Registry)
	store, err := session.NewStore(factory, func(o *session.Options) {
		o.MaxSessions = opts.MaxSessions
		o.Metrics = m
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:    opts,
		store:   store,
		metrics: m,
		logger:  opts.Logger,
		conns:   make(map[*safeConn]struct{}),
	}
	s.handler = s.routes()
	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	static, _ := fs.Sub(staticFiles, "static")
	mux.Handle("GET /{$}", http.FileServerFS(static))
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("POST /api/sessions/{id}/messages", s.handleMessage)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.opts.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	return mux
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler { return s.handler }

// Sessions returns the session store.
func (s *Server) Sessions() *session.Store { return s.store }

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}

	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("Chat server listening", "addr", ln.Addr().String())

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Chat server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the listen address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.opts.Addr
}

// Shutdown stops accepting requests, closes open WebSocket connections
// and waits for their handlers to return or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	s.mu.Lock()
	s.closing = true
	for c := range s.conns {
		_ = c.Close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}

	s.logger.Info("Chat server stopped")
	return err
}

// register tracks c and accounts for its handler in s.wg. It fails once
// Shutdown has started, so no handler joins the wait group late.
func (s *Server) register(c *safeConn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing {
		return false
	}
	s.wg.Add(1)
	s.conns[c] = struct{}{}
	return true
}

func (s *Server) unregister(c *safeConn) {
	s.mu.Lock()
	delete(s.conns, c)
	s.mu.Unlock()
	s.wg.Done()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
