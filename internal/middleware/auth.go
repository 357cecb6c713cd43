package middleware

import (
	"context"
	"net/http"

	"github.com/tkarls/microblog/internal/auth"
	"github.com/tkarls/microblog/internal/authz"
	"github.com/tkarls/microblog/internal/models"
)

type contextKey int

const userKey contextKey = 0

// Authenticate resolves the request's identity (session cookie, then
// remember cookie) and stores it in the request context. It never rejects a
// request; anonymous requests simply carry no user.
func Authenticate(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := manager.CurrentUser(w, r); user != nil {
				r = r.WithContext(WithUser(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithUser returns ctx carrying user as the resolved identity.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// CurrentUser returns the identity resolved by Authenticate, or nil.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// ActorFrom converts the context identity into an authz actor (nil for
// anonymous).
func ActorFrom(ctx context.Context) *authz.Actor {
	user := CurrentUser(ctx)
	if user == nil {
		return nil
	}
	return &authz.Actor{ID: user.ID, Admin: user.Admin}
}

// RequireSignIn redirects anonymous requests to the sign-in page. GET
// destinations are remembered so a following sign-in can resume there.
func RequireSignIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(r.Context()) == nil {
			if r.Method == http.MethodGet {
				auth.SaveForwarding(w, r.URL.RequestURI())
			}
			http.Redirect(w, r, authz.SignInPath, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
