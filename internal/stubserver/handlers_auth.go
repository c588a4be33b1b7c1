package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sakif/devconnect/internal/api"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleRegister creates an account and, like the real backend, logs the
// new user straight in by returning a token alongside the record.
//
// HTTP: POST /auth/register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}

	hash, err := s.passwords.Hash(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	isAdmin := s.adminEmail != "" && strings.ToLower(req.Email) == s.adminEmail
	user, err := s.store.createUser(req.Name, req.Email, hash, isAdmin)
	if err != nil {
		if errors.Is(err, errEmailTaken) {
			writeError(w, http.StatusConflict, "conflict", "User already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, api.AuthResponse{Token: token, User: *user})
}

// handleLogin exchanges credentials for a token. Wrong email and wrong
// password are indistinguishable on the wire.
//
// HTTP: POST /auth/login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	account, err := s.store.userByEmail(req.Email)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
		return
	}
	if err := s.passwords.Verify(account.PasswordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials")
		return
	}

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, api.AuthResponse{Token: token, User: account.User})
}
