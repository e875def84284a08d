package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"wellspring/internal/config"
	"wellspring/internal/database"
	"wellspring/internal/export"
	"wellspring/internal/metrics"
	"wellspring/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Server exposes the public booking API and the admin back office over
// HTTP.
type Server struct {
	cfg    config.ServerConfig
	server *http.Server
	logger *zerolog.Logger

	bookings    *service.BookingService
	assignments *service.AssignmentService
	statuses    *service.StatusService
	customers   *service.CustomerService
	experts     *service.ExpertService
	catalog     *service.CatalogService
	gallery     *service.GalleryService
	auth        *service.AuthService
	exporter    *export.Exporter

	catalogPath string
	limiter     *clientLimiter
}

// Deps carries the collaborators the server routes requests to.
type Deps struct {
	Bookings    *service.BookingService
	Assignments *service.AssignmentService
	Statuses    *service.StatusService
	Customers   *service.CustomerService
	Experts     *service.ExpertService
	Catalog     *service.CatalogService
	Gallery     *service.GalleryService
	Auth        *service.AuthService
	Exporter    *export.Exporter

	// CatalogPath is the seed file used by the admin seed endpoint.
	CatalogPath string
	// StaticRoot, when set, is served under /static/.
	StaticRoot string
}

func NewServer(cfg config.ServerConfig, deps Deps, logger *zerolog.Logger) *Server {
	srv := &Server{
		cfg:         cfg,
		logger:      logger,
		bookings:    deps.Bookings,
		assignments: deps.Assignments,
		statuses:    deps.Statuses,
		customers:   deps.Customers,
		experts:     deps.Experts,
		catalog:     deps.Catalog,
		gallery:     deps.Gallery,
		auth:        deps.Auth,
		exporter:    deps.Exporter,
		catalogPath: deps.CatalogPath,
		limiter:     newClientLimiter(cfg.RateLimit),
	}

	mux := http.NewServeMux()

	// Public surface.
	mux.HandleFunc("/healthz", srv.handleHealth)
	mux.HandleFunc("/api/v1/bookings", srv.handleCreateBooking)
	mux.HandleFunc("/api/v1/services", srv.handlePublicServices)
	mux.HandleFunc("/api/v1/experts", srv.handlePublicExperts)
	mux.HandleFunc("/api/v1/gallery", srv.handlePublicGallery)
	mux.HandleFunc("/api/v1/slots", srv.handleSlots)
	mux.Handle("/metrics", promhttp.Handler())

	if deps.StaticRoot != "" {
		fs := http.FileServer(http.Dir(deps.StaticRoot))
		mux.Handle("/static/", http.StripPrefix("/static/", fs))
	}

	// Admin surface. Login is the only unauthenticated admin route.
	mux.HandleFunc("/api/v1/admin/login", srv.handleLogin)
	admin := srv.requireAdmin(http.HandlerFunc(srv.routeAdmin))
	mux.Handle("/api/v1/admin/", admin)

	handler := srv.loggingMiddleware(srv.rateLimitMiddleware(mux))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	return srv
}

func (s *Server) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the configured handler chain, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// clientLimiter keeps one token bucket per remote host.
type clientLimiter struct {
	cfg      config.RateLimitConfig
	limiters sync.Map // map[string]*rate.Limiter
}

func newClientLimiter(cfg config.RateLimitConfig) *clientLimiter {
	return &clientLimiter{cfg: cfg}
}

func (l *clientLimiter) allow(r *http.Request) bool {
	if l.cfg.RPS <= 0 {
		return true
	}
	return l.getLimiter(clientKey(r)).Allow()
}

func (l *clientLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return "unknown"
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.allow(r) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		metrics.IncHTTP(r.URL.Path)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("http request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps domain errors to HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrServiceInactive):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrGalleryFull), errors.Is(err, service.ErrCatalogNotEmpty):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
