// Package feed renders the home page: the signed-in user's paginated
// micropost feed, or a plain landing page for visitors.
package feed

import (
	"context"
	"net/http"
	"strconv"

	"github.com/tkarls/microblog/internal/middleware"
	"github.com/tkarls/microblog/internal/models"
	"github.com/tkarls/microblog/internal/view"
)

// PerPage is the feed page size. The pagination control appears only once
// the count exceeds a full page, so 30 posts render without it and 31 with.
const PerPage = 30

// FeedStore defines the interface for reading a user's feed.
type FeedStore interface {
	FeedPage(ctx context.Context, userID string, page, perPage int) ([]models.Micropost, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// Handler holds the home feed HTTP handler.
type Handler struct {
	posts FeedStore
}

func NewHandler(posts FeedStore) *Handler {
	return &Handler{posts: posts}
}

// Home renders the feed for the signed-in user, or the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	user := middleware.CurrentUser(r.Context())
	if user == nil {
		view.Render(w, http.StatusOK, "home", view.Data{})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	posts, err := h.posts.FeedPage(r.Context(), user.ID, page, PerPage)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	count, err := h.posts.CountByUser(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view.Render(w, http.StatusOK, "home", view.Data{
		User:     user,
		Posts:    posts,
		Count:    count,
		Paginate: count > PerPage,
		Page:     page,
	})
}
