// Package api provides the HTTP server for the CheerLink daemon.
// The toy shell posts drum hits here; the companion app reads state and
// drives the progression economy.
package api

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cheerlink/cheerlink/internal/app/engagement"
	"github.com/cheerlink/cheerlink/internal/app/gacha"
	"github.com/cheerlink/cheerlink/internal/app/session"
	"github.com/cheerlink/cheerlink/internal/domain"
	"github.com/cheerlink/cheerlink/internal/health"
)

// Server is the CheerLink HTTP API server.
type Server struct {
	sess           *session.Session
	engine         *engagement.Service
	gacha          *gacha.Service
	sink           domain.FeedbackSink
	checker        *health.Checker
	version        string
	metricsEnabled bool

	// cumulative hit counter from the toy's raw notification stream
	counterMu   sync.Mutex
	lastCounter uint32
	counterSeen bool
}

// NewServer creates a new API server.
func NewServer(sess *session.Session, engine *engagement.Service, g *gacha.Service, version string) *Server {
	return &Server{sess: sess, engine: engine, gacha: g, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetFeedbackSink sets the haptic transport used by the manual test endpoint.
func (s *Server) SetFeedbackSink(sink domain.FeedbackSink) { s.sink = sink }

// SetChecker sets the health checker backing /api/health.
func (s *Server) SetChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": s.version,
			})
		})

		r.Post("/hits", s.handleHits)
		r.Post("/hits/raw", s.handleHitsRaw)
		r.Get("/state", s.handleState)
		r.Get("/catalog", s.handleCatalog)

		r.Post("/missions/{id}/claim", s.handleClaimMission)
		r.Post("/bonus/claim", s.handleClaimBonus)

		r.Post("/gacha/draw", s.handleDraw)
		r.Get("/gacha/draws", s.handleDrawHistory)

		r.Post("/items/{itemID}/equip", s.handleEquip)
		r.Post("/items/{itemID}/colors", s.handleUnlockColor)
		r.Post("/items/{itemID}/wishlist", s.handleWishlist)

		r.Put("/settings", s.handleSettings)
		r.Post("/session/pause", s.handlePause)
		r.Post("/feedback/test", s.handleFeedbackTest)

		r.Get("/health", s.handleHealthDetail)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
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

// corsMiddleware adds CORS headers for the local companion app.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
