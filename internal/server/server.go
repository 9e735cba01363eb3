// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/smartmatch-advisor/internal/store"
	"github.com/jonathan/smartmatch-advisor/internal/types"
)

const shutdownTimeout = 10 * time.Second

// Analyzer is the pipeline surface the server needs.
type Analyzer interface {
	Analyze(ctx context.Context, req types.AnalysisRequest) (*types.AnalysisResult, error)
}

// JobFetcher retrieves a job posting's text from a URL.
type JobFetcher interface {
	JobText(ctx context.Context, url string) (string, error)
}

// Options configures a Server. Store, Fetcher, and JWTSecret are optional;
// absent ones disable the corresponding endpoints or checks. An empty
// AllowedOrigin permits any origin.
type Options struct {
	Host          string
	Port          int
	Analyzer      Analyzer
	Fetcher       JobFetcher
	Store         *store.Store
	JWTSecret     string
	AllowedOrigin string
	Model         string
	Log           *zap.Logger
}

// Server is the HTTP front of the analysis pipeline.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	fetcher    JobFetcher
	store      *store.Store
	model      string
	log        *zap.Logger
}

// New builds a Server with its routes and middleware chain wired.
func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{
		analyzer: opts.Analyzer,
		fetcher:  opts.Fetcher,
		store:    opts.Store,
		model:    opts.Model,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("POST /analyze/url", s.handleAnalyzeURL)
	mux.HandleFunc("GET /analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /health", s.handleHealth)

	var handler http.Handler = mux
	if opts.JWTSecret != "" {
		handler = requireJWT(opts.JWTSecret, handler)
	}
	handler = requestLogging(log, recoverPanics(log, cors(opts.AllowedOrigin, handler)))

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", opts.Host, opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the middleware-wrapped handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then drains connections.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
