// Package users holds the user-facing account handlers: signup, profile,
// settings, and the admin-only destroy.
package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/tkarls/microblog/internal/auth"
	"github.com/tkarls/microblog/internal/authz"
	"github.com/tkarls/microblog/internal/middleware"
	"github.com/tkarls/microblog/internal/models"
	"github.com/tkarls/microblog/internal/view"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id, name, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, hashedPw string) error
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// Handler holds the user account HTTP handlers.
type Handler struct {
	users      UserStore
	manager    *auth.Manager
	bcryptCost int
}

func NewHandler(users UserStore, manager *auth.Manager, bcryptCost int) *Handler {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Handler{users: users, manager: manager, bcryptCost: bcryptCost}
}

// authorize applies the decision for op against the routed user id. It
// reports false after writing the redirect when the operation is denied.
func (h *Handler) authorize(w http.ResponseWriter, r *http.Request, op authz.Operation) bool {
	d := authz.Authorize(op, middleware.ActorFrom(r.Context()), chi.URLParam(r, "id"))
	if d.Allow {
		return true
	}
	if d.SaveLocation && r.Method == http.MethodGet {
		auth.SaveForwarding(w, r.URL.RequestURI())
	}
	http.Redirect(w, r, d.RedirectTo, http.StatusFound)
	return false
}

// SignupPage renders the registration form. Signed-in clients are sent home.
func (h *Handler) SignupPage(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, authz.OpSignupPage) {
		return
	}
	view.Render(w, http.StatusOK, "signup", view.Data{Title: "Sign up"})
}

// Create registers a user and signs them in. Signed-in clients are sent
// home without touching the store.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, authz.OpCreateUser) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	name := r.PostFormValue("name")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	if name == "" || email == "" || password == "" {
		view.Render(w, http.StatusUnprocessableEntity, "signup", view.Data{
			Title: "Sign up",
			Flash: "Name, email, and password are required",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	user, err := h.users.CreateUser(r.Context(), name, email, string(hashed))
	if err != nil {
		view.Render(w, http.StatusUnprocessableEntity, "signup", view.Data{
			Title: "Sign up",
			Flash: "Email is already taken",
		})
		return
	}

	if err := h.manager.SignIn(w, r, user); err != nil {
		http.Error(w, "sign in failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users/"+user.ID, http.StatusFound)
}

// Index lists all users. Reaching it at all requires sign-in (routing).
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	view.Render(w, http.StatusOK, "index", view.Data{
		Title: "All users",
		User:  middleware.CurrentUser(r.Context()),
		Users: users,
	})
}

// Show renders a user's public profile.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	target, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	view.Render(w, http.StatusOK, "profile", view.Data{
		Title:  target.Name,
		User:   middleware.CurrentUser(r.Context()),
		Target: target,
	})
}

// EditPage renders the settings form for the routed user.
func (h *Handler) EditPage(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, authz.OpEditUser) {
		return
	}
	target, err := h.users.GetUserByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	view.Render(w, http.StatusOK, "edit", view.Data{
		Title:  "Edit user",
		User:   middleware.CurrentUser(r.Context()),
		Target: target,
	})
}

// Update applies the settings form. A blank password field leaves the
// current password in place.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, authz.OpUpdateUser) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	user, err := h.users.UpdateUser(r.Context(), chi.URLParam(r, "id"),
		r.PostFormValue("name"), r.PostFormValue("email"))
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if password := r.PostFormValue("password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := h.users.UpdatePassword(r.Context(), user.ID, string(hashed)); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
	}
	http.Redirect(w, r, "/users/"+user.ID, http.StatusFound)
}

// Destroy deletes the routed user. Self-deletion is denied for everyone,
// admins included, before the admin check applies.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r, authz.OpDestroyUser) {
		return
	}
	if err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/users", http.StatusFound)
}
