// Package api exposes the simulation engine and its companion tools over HTTP.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/Youngjiloo-101/Betpilot/internal/health"
	"github.com/Youngjiloo-101/Betpilot/internal/logger"
	"github.com/Youngjiloo-101/Betpilot/internal/metrics"
	"github.com/Youngjiloo-101/Betpilot/internal/odds"
	"github.com/Youngjiloo-101/Betpilot/internal/scenario"
	"github.com/Youngjiloo-101/Betpilot/internal/simulation"
)

// Config holds server configuration
type Config struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
	MetricsEnabled bool
	MetricsPath    string
	Logger         *logrus.Logger
	Simulations    *simulation.Service
	Catalog        *odds.Catalog
	Scenarios      *scenario.Store
	Health         *health.Handler
}

// Server represents the HTTP server
type Server struct {
	router      *chi.Mux
	server      *http.Server
	log         *logrus.Entry
	apiLog      *logger.APILogger
	simLog      *logger.SimulationLogger
	simulations *simulation.Service
	catalog     *odds.Catalog
	scenarios   *scenario.Store
	health      *health.Handler
	limiter     *rate.Limiter
	upgrader    websocket.Upgrader
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		log:         cfg.Logger.WithField("component", "server"),
		apiLog:      logger.NewAPILogger(cfg.Logger),
		simLog:      logger.NewSimulationLogger(cfg.Logger),
		simulations: cfg.Simulations,
		catalog:     cfg.Catalog,
		scenarios:   cfg.Scenarios,
		health:      cfg.Health,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     originChecker(cfg.CORSOrigins),
	}

	s.setupMiddleware(cfg)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the root router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	if s.health != nil {
		s.health.Mount(s.router)
	}
	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.router.Handle(path, metrics.Handler())
	}

	s.router.Route("/api", func(r chi.Router) {
		// The stream is long lived and stays outside the request timeout.
		r.With(s.rateLimit).Get("/simulations/stream", s.handleSimulationStream)

		r.Group(func(r chi.Router) {
			if cfg.RequestTimeout > 0 {
				r.Use(middleware.Timeout(cfg.RequestTimeout))
			}

			r.With(s.rateLimit).Post("/simulations", s.handleSimulate)

			r.Route("/odds", func(r chi.Router) {
				r.Get("/options", s.handleOddsOptions)
				r.Get("/filters", s.handleOddsFilters)
				r.Post("/search", s.handleOddsSearch)
			})

			r.Route("/planner", func(r chi.Router) {
				r.Post("/recommendations", s.handleRecommendations)
				r.Post("/weekly", s.handleWeeklyPlan)
			})

			r.Route("/scenarios", func(r chi.Router) {
				r.Get("/", s.handleListScenarios)
				r.With(s.rateLimit).Post("/", s.handleSaveScenario)
				r.Post("/compare", s.handleCompareScenarios)
				r.Get("/{id}", s.handleGetScenario)
				r.Delete("/{id}", s.handleDeleteScenario)
				r.Post("/{id}/duplicate", s.handleDuplicateScenario)
			})
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.WithField("addr", s.server.Addr).Info("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests and records request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		s.apiLog.LogRequest(middleware.GetReqID(r.Context()), r.Method, route, status, elapsed)
		metrics.RecordHTTPRequest(route, r.Method, status, elapsed.Seconds())
	})
}

// rateLimit rejects requests with 429 once the shared limiter is exhausted.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeError(w, errRateLimited)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originChecker(origins []string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(r *http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
