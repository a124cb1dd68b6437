// Package profile is the HTTP surface of the standalone user-profile
// service. It is independent of the room: the coordinator neither calls it
// nor depends on it.
package profile

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Deimvis/MafiaGame/internal/infra/storage"
	"github.com/Deimvis/MafiaGame/internal/platform/logger"
)

// Handler serves profile CRUD over chi.
type Handler struct {
	repo   *storage.ProfileRepository
	logger *logger.Logger
}

func NewHandler(repo *storage.ProfileRepository, log *logger.Logger) *Handler {
	return &Handler{repo: repo, logger: log}
}

// Routes builds the service router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.index)
	r.Post("/users", h.getUsers)
	r.Post("/user", h.createUser)
	r.Route("/user/{username}", func(r chi.Router) {
		r.Get("/", h.getUser)
		r.Put("/", h.updateUser)
		r.Delete("/", h.deleteUser)
		r.Post("/avatar", h.uploadAvatar)
	})
	return r
}

func (h *Handler) index(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("Profile Service"))
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	u, err := h.repo.Get(r.Context(), username)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if u == nil {
		h.jsonError(w, "No such user exists", http.StatusNotFound)
		return
	}
	h.jsonOK(w, u)
}

func (h *Handler) getUsers(w http.ResponseWriter, r *http.Request) {
	var usernames []string
	if err := json.NewDecoder(r.Body).Decode(&usernames); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	users, err := h.repo.GetMany(r.Context(), usernames)
	if err != nil {
		h.internalError(w, err)
		return
	}
	h.jsonOK(w, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var u storage.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil || u.Username == "" {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.repo.Create(r.Context(), u); err != nil {
		h.jsonError(w, "User already exists", http.StatusConflict)
		return
	}
	h.jsonOK(w, map[string]string{"status": "User `" + u.Username + "` created"})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	var u storage.User
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	u.Username = username
	exists, err := h.repo.Exists(r.Context(), username)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if !exists {
		h.jsonError(w, "No such user exists", http.StatusNotFound)
		return
	}
	if err := h.repo.Update(r.Context(), u); err != nil {
		h.internalError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "User `" + username + "` updated"})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	exists, err := h.repo.Exists(r.Context(), username)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if !exists {
		h.jsonError(w, "No such user exists", http.StatusNotFound)
		return
	}
	if err := h.repo.Delete(r.Context(), username); err != nil {
		h.internalError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "User `" + username + "` deleted"})
}

func (h *Handler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	exists, err := h.repo.Exists(r.Context(), username)
	if err != nil {
		h.internalError(w, err)
		return
	}
	if !exists {
		h.jsonError(w, "No such user exists", http.StatusNotFound)
		return
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.jsonError(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	if err := h.repo.SetAvatar(r.Context(), username, data); err != nil {
		h.internalError(w, err)
		return
	}
	h.jsonOK(w, map[string]string{"status": "Avatar uploaded for `" + username + "`"})
}

func (h *Handler) jsonOK(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("profile request failed", "error", err)
	h.jsonError(w, "Internal error", http.StatusInternalServerError)
}
