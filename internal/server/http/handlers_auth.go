package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/campusware/registrar/internal/session"
)

func (h *Handler) ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"pong": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	ident := IdentityFromCtx(r.Context())
	if !ident.Authenticated {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"mid":        ident.ID.String(),
		"first_name": ident.FirstName,
		"last_name":  ident.LastName,
		"is_admin":   ident.IsAdmin,
	})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string `json:"username"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	mid, err := h.auth.SignUp(r.Context(), req.Username, req.Password, req.FirstName, req.LastName)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"mid": mid.String()})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	res, ident, err := h.auth.SignInWithIP(r.Context(), req.Username, req.Password, r.RemoteAddr)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	session.SetCookies(w, res.Session.Token, res.CSRF, res.Session.ExpiresAt, h.cookies)
	writeJSON(w, http.StatusOK, map[string]any{
		"mid":        ident.ID.String(),
		"first_name": ident.FirstName,
		"last_name":  ident.LastName,
		"is_admin":   ident.IsAdmin,
		"expires_at": res.Session.ExpiresAt.UTC(),
	})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), sessionToken(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	session.ClearCookies(w, h.cookies)
	w.WriteHeader(http.StatusNoContent)
}
