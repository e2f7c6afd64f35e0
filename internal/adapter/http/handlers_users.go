package adapthttp

import (
	"net/http"
	"strconv"
	"strings"

	"accounts/internal/app"
	"accounts/internal/domain"
)

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	users, err := s.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/users/"), 10, 64)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		user, err := s.users.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)

	case http.MethodPut:
		// Ownership is checked before the record lookup, so a foreign id
		// answers 403 even when no such user exists.
		if !s.authorizeOwnership(w, r.Context(), id) {
			return
		}

		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := parseJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		in := app.UpdateInput{Username: req.Username, Email: req.Email, Password: req.Password}
		if err := s.users.Update(r.Context(), id, in); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "user updated"})

	case http.MethodDelete:
		if !s.authorizeOwnership(w, r.Context(), id) {
			return
		}

		if err := s.users.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "user deleted"})

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
