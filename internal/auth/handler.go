package auth

import (
	"net/http"

	"github.com/tkarls/microblog/internal/view"
)

// Handler holds the sign-in / sign-out HTTP handlers.
type Handler struct {
	verifier *Verifier
	manager  *Manager
}

func NewHandler(verifier *Verifier, manager *Manager) *Handler {
	return &Handler{verifier: verifier, manager: manager}
}

// SigninPage renders the sign-in form.
func (h *Handler) SigninPage(w http.ResponseWriter, r *http.Request) {
	view.Render(w, http.StatusOK, "signin", view.Data{
		Title: "Sign in",
		User:  h.manager.CurrentUser(w, r),
	})
}

// Signin verifies the submitted credentials. Failure re-renders the form
// with an alert scoped to this response; success establishes the session and
// resumes any remembered destination.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	user, err := h.verifier.Verify(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil {
		view.Render(w, http.StatusUnauthorized, "signin", view.Data{
			Title: "Sign in",
			Flash: "Invalid email/password combination",
		})
		return
	}

	if err := h.manager.SignIn(w, r, user); err != nil {
		http.Error(w, "sign in failed", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, ConsumeForwarding(w, r), http.StatusFound)
}

// Signout tears down both session tiers and lands on the home page.
func (h *Handler) Signout(w http.ResponseWriter, r *http.Request) {
	h.manager.SignOut(w, r)
	http.Redirect(w, r, "/", http.StatusFound)
}
