// Package server hosts the comparison engine behind an HTTP API for the
// browser frontend: upload two documents, receive a report, release notes,
// or a line diff.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/erraggy/specdiff/differ"
	"github.com/erraggy/specdiff/internal/config"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Config config.ServerConfig
	// Policy classifies differences. Default: differ.DefaultPolicy
	Policy differ.Policy
	// Validate runs lint on both uploads and returns the issues as warnings
	Validate bool
	Logger   *zap.Logger
	// Now supplies the release-notes date. Default: time.Now
	Now func() time.Time
}

// Server is the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	policy   differ.Policy
	validate bool
	log      *zap.Logger
	now      func() time.Time

	cache   *expirable.LRU[string, *analysis]
	limiter *rate.Limiter
	metrics *Metrics
	handler http.Handler
}

// New creates a Server and builds its routes.
func New(opts Options) *Server {
	s := &Server{
		cfg:      opts.Config,
		policy:   opts.Policy,
		validate: opts.Validate,
		log:      opts.Logger,
		now:      opts.Now,
		metrics:  NewMetrics(),
	}
	if s.policy == nil {
		s.policy = differ.DefaultPolicy{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.cfg.CacheSize > 0 {
		s.cache = expirable.NewLRU[string, *analysis](s.cfg.CacheSize, nil, s.cfg.CacheTTL)
	}
	if s.cfg.RateLimitRPS > 0 {
		burst := s.cfg.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimitRPS), burst)
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	router := httprouter.New()
	router.POST("/api/analyze", s.rateLimit(s.handleAnalyze))
	router.POST("/api/release-notes", s.rateLimit(s.handleReleaseNotes))
	router.POST("/api/full-diff", s.rateLimit(s.handleFullDiff))
	router.GET("/healthz", s.handleHealth)
	router.Handler(http.MethodGet, "/metrics", s.metrics.Handler())
	if s.cfg.StaticDir != "" {
		router.NotFound = spaHandler(s.cfg.StaticDir)
	}
	router.PanicHandler = s.handlePanic

	return chain(router, s.requestID, s.accessLog)
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on the configured address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
