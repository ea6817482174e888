// Package api serves both search engines over HTTP.
//
// Routes:
//
//	GET  /healthz                        liveness and dataset size
//	GET  /v1/people?name=NAME            people with a name
//	GET  /v1/path?source=NAME&target=NAME
//	GET  /v1/path?source_id=ID&target_id=ID
//	POST /v1/tictactoe/move              {"board": "XX_/OO_/___"}
//	GET  /metrics                        Prometheus exposition
//
// Every request carries a deadline (see [Options.RequestTimeout]) that is
// propagated into the search engines; a search that runs out of time
// answers 504. Errors are JSON objects with "code" and "error" fields.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/frontier/pkg/dataset"
	"github.com/matzehuels/frontier/pkg/pipeline"
	"github.com/matzehuels/frontier/pkg/search"
)

// DefaultRequestTimeout bounds a request when [Options.RequestTimeout] is zero.
const DefaultRequestTimeout = 10 * time.Second

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 16

// Options configures a [Server].
type Options struct {
	// RequestTimeout is the per-request deadline. Zero means
	// DefaultRequestTimeout; negative disables the deadline.
	RequestTimeout time.Duration
	// Frontier selects the degrees frontier. Empty means breadth-first.
	Frontier search.Kind
	// Gatherer backs /metrics. Nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	Logger   *log.Logger
}

// Server answers queries against one loaded dataset.
// It is safe for concurrent use.
type Server struct {
	runner   *pipeline.Runner
	ds       *dataset.Dataset
	timeout  time.Duration
	frontier search.Kind
	gatherer prometheus.Gatherer
	logger   *log.Logger
}

// NewServer creates a server. A nil runner gets an uncached default.
func NewServer(runner *pipeline.Runner, ds *dataset.Dataset, opts Options) *Server {
	s := &Server{
		runner:   runner,
		ds:       ds,
		timeout:  opts.RequestTimeout,
		frontier: opts.Frontier,
		gatherer: opts.Gatherer,
		logger:   opts.Logger,
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.runner == nil {
		s.runner = pipeline.NewRunner(nil, nil, s.logger)
	}
	if s.timeout == 0 {
		s.timeout = DefaultRequestTimeout
	}
	if s.frontier == "" {
		s.frontier = pipeline.DefaultFrontier
	}
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	return s
}

// Handler returns the routed handler with middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(deadline(s.timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/people", s.people)
		r.Get("/path", s.path)
		r.Post("/tictactoe/move", s.tictactoeMove)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: "NOT_FOUND", Error: "no such route"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Code: "INVALID_INPUT", Error: "method not allowed"})
	})
	return r
}
