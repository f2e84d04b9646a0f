// internal/httpserver/admin.go
//
// Admin authentication for catalog writes.
//   - POST /admin/token → bcrypt-checked password, returns an HS256 JWT
//   - requireAdmin      → bearer token middleware

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

type tokenReq struct {
	Password string `json:"password"`
}

type tokenRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Server) mountAdmin(r chi.Router) {
	r.Post("/admin/token", s.handleAdminToken)
}

// handleAdminToken exchanges the admin password for a short-lived JWT.
// Catalog writes are disabled when no password hash is configured.
func (s *Server) handleAdminToken(w http.ResponseWriter, r *http.Request) {
	hash := s.cfg.Server.AdminPasswordHash
	if hash == "" {
		writeError(w, http.StatusForbidden, "admin_disabled")
		return
	}
	var body tokenReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if !checkPassword(hash, body.Password) {
		log.Warn().Str("remote", r.RemoteAddr).Msg("admin login failed")
		writeError(w, http.StatusUnauthorized, "invalid_password")
		return
	}
	tok, exp, err := s.signAdminJWT()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, tokenRes{Token: tok, ExpiresAt: exp})
}

// signAdminJWT creates an HS256 JWT for the admin subject.
func (s *Server) signAdminJWT() (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.Server.TokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.cfg.Server.JWTSecret))
	return ss, exp, err
}

// requireAdmin enforces a valid admin JWT in the Authorization header.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := bearer(r)
		if tokenStr == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if err := s.verifyAdminJWT(tokenStr); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) verifyAdminJWT(tokenStr string) error {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.Server.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return err
	}
	if !token.Valid || claims.Subject != adminSubject {
		return errors.New("not an admin token")
	}
	return nil
}

// checkPassword is a bcrypt verifier.
func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// bearer extracts the token from "Authorization: Bearer <token>".
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}
