package microposts

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkarls/microblog/internal/middleware"
	"github.com/tkarls/microblog/internal/models"
)

// MicropostStore defines the interface for micropost persistence.
type MicropostStore interface {
	Insert(ctx context.Context, post *models.Micropost) (string, error)
	GetByID(ctx context.Context, id string) (*models.Micropost, error)
	Delete(ctx context.Context, id string) error
}

// Handler holds the micropost HTTP handlers. Both routes sit behind
// RequireSignIn; anonymous requests never reach them.
type Handler struct {
	posts MicropostStore
}

func NewHandler(posts MicropostStore) *Handler {
	return &Handler{posts: posts}
}

// Create posts a micropost as the signed-in user.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	content := r.PostFormValue("content")
	if content == "" || len(content) > 140 {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if _, err := h.posts.Insert(r.Context(), &models.Micropost{
		UserID:  user.ID,
		Content: content,
	}); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Destroy deletes a micropost. Unknown ids are a 404, not a silent no-op.
//
// TODO: enforce that only the owning user may delete their post once the
// product settles whether non-owners get a redirect or a 404.
func (h *Handler) Destroy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := h.posts.GetByID(r.Context(), id); err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}
