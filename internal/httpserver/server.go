// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Word endpoints: GET /words, GET /words/daily (JSON arrays a Word Source can fetch).
//   - Catalog writes: POST /admin/token, POST /words (JWT required).
//   - Game endpoints: POST /game/new, POST /game/key, GET /game/{id}, GET /game/ws.
//   - Browser client: GET /play.
//
// Notes:
//   - CORS is origin-aware (single configured origin).
//   - The websocket route sits outside the timeout group; a connection
//     lives as long as the browser tab.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/assets"
	"github.com/robalobadob/wordle/internal/config"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/words"
)

// Catalog is the word list the server hands out and draws solutions from.
type Catalog interface {
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, source string, list []string) (int, error)
}

// Server bundles router, session store, word catalog and metrics.
type Server struct {
	r        *chi.Mux
	http     *http.Server
	cfg      *config.Config
	store    store.Store
	catalog  Catalog
	scoring  game.Scoring
	metrics  *metrics
	upgrader websocket.Upgrader
	now      func() time.Time
	fallback func() []string
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, cat Catalog) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		store:    st,
		catalog:  cat,
		scoring:  cfg.Scoring(),
		metrics:  newMetrics(st),
		now:      time.Now,
		fallback: words.Answers,
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(accessLog)
	s.r.Use(s.cors)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)

		// --- diagnostics ---
		r.Get("/", s.handleIndex)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})

		s.mountWords(r)
		s.mountAdmin(r)
		s.mountGame(r)
	})

	s.r.Handle("/metrics", s.metrics.handler())
	s.r.Get("/game/ws", s.handleWS)
	s.r.Get("/play", s.handlePlay)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr and blocks until Shutdown.
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Info().Str("addr", addr).Msg("http server listening")
	return s.http.ListenAndServe()
}

// Shutdown gracefully stops a started server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

type indexRes struct {
	Service      string   `json:"service"`
	BundledWords int      `json:"bundledWords"`
	Endpoints    []string `json:"endpoints"`
}

// handleIndex describes the service and the size of the bundled list.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, indexRes{
		Service:      "wordle",
		BundledWords: words.Stats(),
		Endpoints: []string{
			"/health", "/metrics", "/words", "/words/daily",
			"POST /game/new", "POST /game/key", "/game/{id}", "/game/ws", "/play",
		},
	})
}

// handlePlay serves the embedded browser client.
func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, assets.Web(), "index.html")
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the single configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.Server.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host pages and the configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == s.cfg.Server.ClientOrigin {
		return true
	}
	return origin == "http://"+r.Host || origin == "https://"+r.Host
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
