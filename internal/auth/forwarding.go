package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/tkarls/microblog/internal/authz"
)

// ForwardingCookie holds the destination a denied anonymous request was
// headed to. Single slot: each denial overwrites it; sign-in consumes it.
const ForwardingCookie = "forwarding_url"

// SaveForwarding remembers url for the current client. The cookie lives as
// long as an ephemeral session would.
func SaveForwarding(w http.ResponseWriter, url string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ForwardingCookie,
		Value:    url,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// ConsumeForwarding returns the remembered destination and clears it, or the
// default landing page when nothing was remembered. Only same-site relative
// paths are honored; anything else falls back to the default so the cookie
// cannot serve as an open redirect.
func ConsumeForwarding(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(ForwardingCookie)
	if err != nil {
		return authz.RootPath
	}
	http.SetCookie(w, &http.Cookie{
		Name:     ForwardingCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	url := cookie.Value
	if !strings.HasPrefix(url, "/") || strings.HasPrefix(url, "//") {
		return authz.RootPath
	}
	return url
}
