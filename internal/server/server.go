package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aievents/internal/event"
	"aievents/internal/logger"
	"aievents/internal/metrics"
)

// HeaderAPIKey is the shared-secret request header.
const HeaderAPIKey = "X-API-Key"

// Pipeline is the scrape pipeline invoked per request.
type Pipeline interface {
	Run(ctx context.Context) ([]event.Record, error)
}

// Config holds the server's construction-time settings. The shared secret
// is injected here; the server keeps no package-level state.
type Config struct {
	APIKey     string
	ListenAddr string
}

// Server serves the authenticated AI events endpoint plus health and
// metrics endpoints.
type Server struct {
	cfg      Config
	pipeline Pipeline
	log      *logger.Logger
	metrics  *metrics.Metrics
	mux      *http.ServeMux
	httpSrv  *http.Server
}

// eventsResponse is the success body of GET /ai-events.
type eventsResponse struct {
	AIEvents []event.Record `json:"ai_events"`
}

// detailResponse is the error body shape shared by all failure responses.
type detailResponse struct {
	Detail string `json:"detail"`
}

// New creates a Server. gatherer backs the /metrics endpoint; m may be nil
// to skip request instrumentation.
func New(cfg Config, pipeline Pipeline, log *logger.Logger, m *metrics.Metrics, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		cfg:      cfg,
		pipeline: pipeline,
		log:      log,
		metrics:  m,
		mux:      http.NewServeMux(),
	}

	s.mux.Handle("GET /ai-events", s.withRequestID(s.requireAPIKey(http.HandlerFunc(s.handleAIEvents))))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if gatherer != nil {
		s.mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	s.httpSrv = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler exposes the routing mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("listening", logger.Fields{"addr": s.cfg.ListenAddr})
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	s.log.Info("shutting down", nil)
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// handleAIEvents runs the full pipeline and responds with the filtered
// records. Authentication has already happened in the middleware; any
// pipeline failure becomes a single structured 500, never a partial body.
func (s *Server) handleAIEvents(w http.ResponseWriter, r *http.Request) {
	records, err := s.pipeline.Run(r.Context())
	if err != nil {
		s.log.Error("scrape pipeline failed", logger.Fields{
			"request_id": requestIDFrom(r.Context()),
		}, err)
		s.writeDetail(w, r, http.StatusInternalServerError,
			fmt.Sprintf("Failed to scrape events: %v", err))
		return
	}

	if records == nil {
		records = []event.Record{}
	}

	s.writeJSON(w, r, http.StatusOK, eventsResponse{AIEvents: records})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// requireAPIKey rejects requests without the correct shared secret before
// any scraping work begins.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(HeaderAPIKey)
		if key == "" {
			s.writeDetail(w, r, http.StatusUnauthorized, "API key is required")
			return
		}
		if key != s.cfg.APIKey {
			s.writeDetail(w, r, http.StatusUnauthorized, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("encoding response failed", logger.Fields{"path": r.URL.Path}, err)
	}
	if s.metrics != nil {
		s.metrics.RequestsTotal.WithLabelValues(r.URL.Path, fmt.Sprintf("%d", status)).Inc()
	}
}

func (s *Server) writeDetail(w http.ResponseWriter, r *http.Request, status int, detail string) {
	s.writeJSON(w, r, status, detailResponse{Detail: detail})
}

// SignalContext returns a context canceled on SIGINT or SIGTERM.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	return ctx
}
