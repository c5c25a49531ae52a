// Package httpapi exposes the backend HTTP contract: signup/login, the
// "who am I" endpoint, and note CRUD for the authenticated user.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/keepnotes/internal/common"
	"github.com/dmitrijs2005/keepnotes/internal/logging"
	"github.com/dmitrijs2005/keepnotes/internal/server/auth"
	"github.com/dmitrijs2005/keepnotes/internal/server/models"
	"github.com/dmitrijs2005/keepnotes/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	users         *services.UserService
	notes         *services.NoteService
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewHandler(us *services.UserService, ns *services.NoteService, logger logging.Logger, secretKey string, tokenValidity time.Duration) *Handler {
	return &Handler{
		users:         us,
		notes:         ns,
		logger:        logger.With("module", "httpapi"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

// Router assembles the route tree. Everything below the auth group carries
// a validated user in the request context.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Get("/users/me", h.me)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", h.listNotes)
			r.Post("/", h.createNote)
			r.Put("/{id}", h.updateNote)
			r.Delete("/{id}", h.deleteNote)
		})
	})

	return r
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func newUserView(u *models.User) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email}
}

type noteView struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	CreatedOn  string `json:"created_on"`
	LastUpdate string `json:"last_update"`
}

func newNoteView(n *models.Note) noteView {
	return noteView{
		ID:         n.ID,
		UserID:     n.UserID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedOn:  n.CreatedOn.UTC().Format(time.RFC3339),
		LastUpdate: n.LastUpdate.UTC().Format(time.RFC3339),
	}
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			writeDetail(w, http.StatusBadRequest, common.ErrEmailTaken.Error())
			return
		}
		h.logger.Error(r.Context(), "signup failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, newUserView(user))
}

// login exchanges form-encoded credentials for an access token. The form's
// username field carries the email.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form body")
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			writeUnauthorized(w, "Incorrect email or password")
			return
		}
		h.logger.Error(r.Context(), "login failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := auth.GenerateToken(user.Email, h.jwtSecret, h.tokenValidity)
	if err != nil {
		h.logger.Error(r.Context(), "token generation failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, detailInvalidCredentials)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(user))
}

func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, detailInvalidCredentials)
		return
	}

	notes, err := h.notes.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Error(r.Context(), "listing notes failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, newNoteView(n))
	}
	writeJSON(w, http.StatusOK, views)
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, detailInvalidCredentials)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Create(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		h.logger.Error(r.Context(), "creating note failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, newNoteView(note))
}

func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, detailInvalidCredentials)
		return
	}

	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	note, err := h.notes.Update(r.Context(), user.ID, chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Note not found")
			return
		}
		h.logger.Error(r.Context(), "updating note failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, newNoteView(note))
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, detailInvalidCredentials)
		return
	}

	if err := h.notes.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Note not found")
			return
		}
		h.logger.Error(r.Context(), "deleting note failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
