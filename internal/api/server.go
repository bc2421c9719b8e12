// Package api provides the local HTTP surface for macrolog.
// A form UI drives the tracker through these JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/macrolog/macrolog/internal/app/tracker"
	"github.com/macrolog/macrolog/internal/domain"
	"github.com/macrolog/macrolog/internal/infra/observability"
)

// maxImportBytes caps an import upload.
const maxImportBytes = 10 << 20

// Server is the macrolog HTTP API server.
type Server struct {
	store          *tracker.Store
	log            *zap.Logger
	metricsEnabled bool
	corsOrigins    []string
	clock          func() time.Time
}

// NewServer creates a new API server over store.
func NewServer(store *tracker.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		store:       store,
		log:         log.Named("api"),
		corsOrigins: []string{"*"},
		clock:       time.Now,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCORSOrigins sets the origins allowed to call the API from a browser.
func (s *Server) SetCORSOrigins(origins []string) { s.corsOrigins = origins }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Get("/weekly", s.handleWeekly)
		r.Put("/targets", s.handleSetTargets)
		r.Put("/active", s.handleSetActive)

		r.Post("/days", s.handleNewDay)
		r.Route("/days/{day}", func(r chi.Router) {
			r.Patch("/", s.handleSetDayField)
			r.Post("/delete", s.handleDeleteClick)
			r.Post("/exercises", s.handleAddExercise)
			r.Patch("/exercises/{ex}", s.handleSetExerciseField)
			r.Delete("/exercises/{ex}", s.handleRemoveExercise)
		})
		r.Post("/delete/cancel", s.handleDeleteCancel)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleCatalog)
			r.Get("/types", s.handleCatalogTypes)
			r.Get("/groups", s.handleCatalogGroups)
			r.Get("/exercises", s.handleCatalogExercises)
		})

		r.Get("/export/{format}", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Get("/backups", s.handleListBackups)
		r.Post("/backups/{id}/restore", s.handleRestoreBackup)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// requestLogger logs one line per request at debug level and records
// request metrics under the matched route pattern.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		observability.ObserveRequest(route, r.Method, ww.Status(), start)
		s.log.Debug("request",
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps a tracker error onto a status code.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func errorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrDayNotFound),
		errors.Is(err, domain.ErrExerciseNotFound),
		errors.Is(err, domain.ErrBackupNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrImportParse):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotArmed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoTargets),
		errors.Is(err, domain.ErrImportShape):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// decodeBody decodes a JSON request body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	return dec.Decode(v)
}
