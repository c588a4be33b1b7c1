package stubserver

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Admin handlers. requireAdmin has already vetted the caller by the time
// any of these run.

// HTTP: GET /admin/users
func (s *Server) handleAdminListUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listUsers())
}

// HTTP: GET /admin/posts
func (s *Server) handleAdminListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listPosts())
}

// HTTP: DELETE /admin/user/{id}
func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.store.deleteUser(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found", "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "User removed"})
}

// HTTP: DELETE /admin/post/{id}
func (s *Server) handleAdminDeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	if err := s.store.deletePost(chi.URLParam(r, "id"), user, true); err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "Post not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "Post removed"})
}
