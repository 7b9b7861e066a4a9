package server

import (
	"errors"
	"net/http"

	"caremap/internal/app"
)

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allow(s.registerLimiter, r) {
		writeError(w, http.StatusTooManyRequests, "too many registration attempts, slow down")
		return
	}
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if issues := req.Validate(); len(issues) > 0 {
		writeValidationErrors(w, issues)
		return
	}
	user, err := s.app.Register(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user registered successfully",
		"user":    user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	if !s.allow(s.loginLimiter, r) {
		writeError(w, http.StatusTooManyRequests, "too many login attempts, slow down")
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if issues := req.Validate(); len(issues) > 0 {
		writeValidationErrors(w, issues)
		return
	}
	token, err := s.app.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, app.ErrUnknownEmail) || errors.Is(err, app.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(w, r, err)
		return
	}
	// Login reports 201: a new session token was created.
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user logged in successfully",
		"token":   token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ uint) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	// The middleware already verified the token; revoke the same one.
	token, _ := bearerToken(r)
	if err := s.app.Logout(token); err != nil {
		writeInternalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "user logged out successfully",
	})
}
