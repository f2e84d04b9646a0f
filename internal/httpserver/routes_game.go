// internal/httpserver/routes_game.go
//
// Keyboard-driven game sessions over plain HTTP.
//   - POST /game/new  → create a session with a resolved solution
//   - POST /game/key  → apply one key event, return the board
//   - GET  /game/{id} → current board
//
// The server is its own Word Source here: the solution is drawn from the
// catalog at creation, so sessions never sit on the placeholder.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/internal/daily"
	"github.com/robalobadob/wordle/internal/game"
	"github.com/robalobadob/wordle/internal/store"
	"github.com/robalobadob/wordle/internal/view"
	"github.com/robalobadob/wordle/internal/words"
)

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/key", s.handleKey)
	r.Get("/game/{id}", s.handleBoard)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Answer string `json:"answer"` // optional fixed answer (testing)
	Daily  bool   `json:"daily"`  // use today's word
}
type newGameRes struct {
	GameID string     `json:"gameId"`
	Board  view.Board `json:"board"`
}

// handleNewGame creates a session and stores it in memory.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	// empty bodies are fine
	_ = json.NewDecoder(r.Body).Decode(&req)

	answer := req.Answer
	if answer == "" {
		list := s.candidates(r.Context())
		if req.Daily {
			answer = daily.Word(s.now(), s.cfg.Words.DailySalt, list)
		} else if word, err := words.Pick(list); err == nil {
			answer = word
		}
		if answer == "" {
			log.Error().Msg("no words to draw a solution from")
			writeError(w, http.StatusServiceUnavailable, "no_words")
			return
		}
	}

	sess := game.NewSession()
	if err := sess.SetSolution(answer); err != nil {
		if req.Answer != "" {
			writeError(w, http.StatusBadRequest, "invalid_answer")
			return
		}
		log.Error().Err(err).Str("answer", answer).Msg("set solution")
		writeError(w, http.StatusInternalServerError, "bad_word")
		return
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.metrics.sessions.Inc()
	log.Debug().Str("gameId", sess.ID()).Bool("daily", req.Daily).Msg("session created")

	writeJSON(w, http.StatusOK, newGameRes{
		GameID: sess.ID(),
		Board:  view.Project(sess.Snapshot(), s.scoring),
	})
}

// keyReq/Res payloads for POST /game/key.
type keyReq struct {
	GameID string `json:"gameId"`
	Key    string `json:"key"`
}
type boardRes struct {
	Board view.Board `json:"board"`
}

// handleKey applies one key event. Keys that do nothing still succeed;
// invalid input is never an error.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess, ok := s.lookup(w, r, req.GameID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, boardRes{Board: s.press(sess, game.Key(req.Key))})
}

// handleBoard returns the current board.
func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, boardRes{Board: view.Project(sess.Snapshot(), s.scoring)})
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request, id string) (*game.Session, bool) {
	sess, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store_error")
		return nil, false
	}
	return sess, true
}

// press applies k to sess, records metrics and returns the new board.
func (s *Server) press(sess *game.Session, k game.Key) view.Board {
	before := sess.Snapshot()
	after := sess.Press(k)

	if after == before {
		s.metrics.keys.WithLabelValues("ignored").Inc()
	} else {
		s.metrics.keys.WithLabelValues("applied").Inc()
	}
	if !before.Over() && after.Over() {
		outcome := "lost"
		if after.Won() {
			outcome = "won"
		}
		s.metrics.finished.WithLabelValues(outcome).Inc()
		log.Info().Str("gameId", sess.ID()).Str("outcome", outcome).Int("guesses", after.Filled()).Msg("game finished")
	}
	return view.Project(after, s.scoring)
}
