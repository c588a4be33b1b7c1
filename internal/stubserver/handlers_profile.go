package stubserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/rs/xid"

	"github.com/sakif/devconnect/internal/api"
	"github.com/sakif/devconnect/internal/model"
)

// handleMyProfile returns the caller's profile with the owner's name
// flattened in, matching the real backend's /profile/me shape.
//
// HTTP: GET /profile/me
func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	profile, err := s.store.profileByUserID(user.ID)
	if err != nil {
		if errors.Is(err, errNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "There is no profile for this user")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	profile.Name = user.Name
	writeJSON(w, http.StatusOK, profile)
}

// handleSaveProfile creates or replaces the caller's profile. Skills
// arrives as the comma-separated edit form and is split here, server-side.
//
// HTTP: POST /profile
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized", "valid authentication required")
		return
	}

	var payload api.ProfilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	saved := s.store.saveProfile(user.ID, model.Profile{
		Name:   payload.Name,
		Bio:    payload.Bio,
		Skills: splitSkills(payload.Skills),
		Social: model.Social{
			GitHub:   payload.GitHub,
			LinkedIn: payload.LinkedIn,
			Twitter:  payload.Twitter,
		},
		ImageURL: payload.ImageURL,
	})

	writeJSON(w, http.StatusOK, saved)
}

// handleUploadImage accepts a multipart image (field "image") and returns
// the URL it would be served from. The stub keeps nothing: the client only
// cares about the returned path.
//
// HTTP: POST /profile/upload
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	// 8 MiB is plenty for an avatar.
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", `multipart field "image" is required`)
		return
	}
	file.Close()

	imageURL := "/uploads/" + xid.New().String() + path.Ext(header.Filename)
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": imageURL})
}

// handleSearchProfiles filters profiles by owner name and skill.
//
// HTTP: GET /profile/search?name=&skill=
func (s *Server) handleSearchProfiles(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	skill := r.URL.Query().Get("skill")
	writeJSON(w, http.StatusOK, s.store.searchProfiles(name, skill))
}

func splitSkills(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
