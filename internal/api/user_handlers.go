package api

import (
	"net/http"

	"github.com/ngabriel/sproutquest/internal/logger"
)

type createUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.UserService.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.CreateUser(r.Context(), req.Username, req.Email)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.UserService.DeleteUser(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSelectUser sets the user cookie, the lightweight stand-in for a
// session.
func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := idParam(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	log.Info("user %d selected", user.ID)
	respondJSON(w, http.StatusOK, user)
}
