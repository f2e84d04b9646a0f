// internal/httpserver/routes_words.go
//
// Word list endpoints. Both answer with a plain JSON array of strings, the
// shape a Word Source expects:
//   - GET  /words        → the whole catalog
//   - GET  /words/daily  → a one-element array holding today's word
//   - POST /words        → add words to the catalog (admin token required)

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/catalog"
	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/words"
)

func (s *Server) mountWords(r chi.Router) {
	r.Get("/words", s.handleWords)
	r.Get("/words/daily", s.handleDailyWord)
	r.With(s.requireAdmin).Post("/words", s.handleAddWords)
}

// candidates returns the catalog, or the fallback list (the bundled
// answers) when the catalog is empty or unavailable.
func (s *Server) candidates(ctx context.Context) []string {
	if s.catalog != nil {
		list, err := s.catalog.List(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("list catalog")
		} else if len(list) > 0 {
			return list
		}
	}
	return s.fallback()
}

// handleWords returns every candidate word.
func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	list := s.candidates(r.Context())
	if len(list) == 0 {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	s.metrics.wordLists.WithLabelValues("all").Inc()
	writeJSON(w, http.StatusOK, list)
}

// handleDailyWord returns today's deterministic word as ["word"].
func (s *Server) handleDailyWord(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	word := daily.Word(now, s.cfg.Words.DailySalt, s.candidates(r.Context()))
	if word == "" {
		writeError(w, http.StatusServiceUnavailable, "no_words")
		return
	}
	s.metrics.wordLists.WithLabelValues("daily").Inc()
	w.Header().Set("X-Daily-Date", daily.DateKey(now))
	writeJSON(w, http.StatusOK, []string{word})
}

type addWordsReq struct {
	Words []string `json:"words"`
}

type addWordsRes struct {
	Added int `json:"added"`
	Total int `json:"total"`
}

// handleAddWords inserts admin-supplied words into the catalog.
func (s *Server) handleAddWords(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, "no_catalog")
		return
	}
	var req addWordsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(words.Normalize(req.Words)) == 0 {
		writeError(w, http.StatusBadRequest, "no_valid_words")
		return
	}
	added, err := s.catalog.Add(r.Context(), catalog.SourceAdmin, req.Words)
	if err != nil {
		log.Error().Err(err).Msg("add catalog words")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	s.metrics.catalogAdds.Add(float64(added))

	list, err := s.catalog.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	log.Info().Int("added", added).Int("total", len(list)).Msg("catalog updated")
	writeJSON(w, http.StatusOK, addWordsRes{Added: added, Total: len(list)})
}
