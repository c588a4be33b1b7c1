package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type textRequest struct {
	Text string `json:"text"`
}

// HTTP: GET /posts
func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.listPosts())
}

// HTTP: POST /posts
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "Text is required")
		return
	}

	writeJSON(w, http.StatusCreated, s.store.createPost(user, req.Text))
}

// handleLikePost returns the post's full updated like set — the client
// replaces its local copy wholesale.
//
// HTTP: PUT /posts/like/{id}
func (s *Server) handleLikePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	likes, err := s.store.like(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// HTTP: PUT /posts/unlike/{id}
func (s *Server) handleUnlikePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	likes, err := s.store.unlike(chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Post not found")
		return
	}
	writeJSON(w, http.StatusOK, likes)
}

// handleDeletePost lets users remove only their own posts.
//
// HTTP: DELETE /posts/{id}
func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	err = s.store.deletePost(chi.URLParam(r, "id"), user, false)
	switch {
	case errors.Is(err, errNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Post not found")
	case errors.Is(err, errNotOwner):
		writeError(w, http.StatusForbidden, "forbidden", "User not authorized")
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
	default:
		writeJSON(w, http.StatusOK, map[string]string{"msg": "Post removed"})
	}
}

// handleAddComment returns the stored comment; the client prepends it to
// that post's comment list.
//
// HTTP: POST /posts/comment/{id}
func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "Text is required")
		return
	}

	comment, err := s.store.addComment(chi.URLParam(r, "id"), user, req.Text)
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", "Post not found")
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}
