package auth

import (
	"log"
	"net/http"
	"time"

	"github.com/tkarls/microblog/internal/models"
)

// Manager orchestrates sign-in, sign-out, and identity resolution over the
// two session tiers: the ephemeral Redis session and the durable remember
// cookie.
type Manager struct {
	users    UserStore
	sessions *SessionStore
}

func NewManager(users UserStore, sessions *SessionStore) *Manager {
	return &Manager{users: users, sessions: sessions}
}

// SignIn establishes a session for user and rotates their remember token.
// Any cookie minted by an earlier sign-in stops matching as soon as the new
// token is stored; that is the accepted multi-device behavior.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, user *models.User) error {
	sid, err := m.sessions.Create(r.Context(), user.ID)
	if err != nil {
		return err
	}
	setSessionCookie(w, sid)

	token, err := newRememberToken()
	if err != nil {
		return err
	}
	if err := m.users.UpdateRememberToken(r.Context(), user.ID, token); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     RememberCookie,
		Value:    encodeRememberCookie(user.ID, token),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(RememberTTL / time.Second),
	})
	return nil
}

// SignOut clears the ephemeral session, the remember cookie, and the stored
// remember token together. Clearing only one side would leave a recoverable
// identity.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if userID, err := m.sessions.Get(r.Context(), cookie.Value); err == nil && userID != "" {
			if err := m.users.UpdateRememberToken(r.Context(), userID, ""); err != nil {
				log.Printf("signout: clear remember token: %v", err)
			}
		}
		if err := m.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("signout: delete session: %v", err)
		}
	}
	// The stored token must also be cleared when only the remember cookie
	// identifies the client.
	if cookie, err := r.Cookie(RememberCookie); err == nil {
		if userID, _, ok := decodeRememberCookie(cookie.Value); ok {
			if err := m.users.UpdateRememberToken(r.Context(), userID, ""); err != nil {
				log.Printf("signout: clear remember token: %v", err)
			}
		}
	}
	clearCookie(w, SessionCookie)
	clearCookie(w, RememberCookie)
}

// CurrentUser resolves the identity for a request: the session cookie first,
// then the remember cookie. A remember-cookie hit silently re-establishes
// the ephemeral session so later requests take the fast path. Absent,
// malformed, or mismatched state degrades to nil, never an error.
func (m *Manager) CurrentUser(w http.ResponseWriter, r *http.Request) *models.User {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		userID, err := m.sessions.Get(r.Context(), cookie.Value)
		if err == nil && userID != "" {
			if user, err := m.users.GetUserByID(r.Context(), userID); err == nil {
				return user
			}
		}
	}

	cookie, err := r.Cookie(RememberCookie)
	if err != nil {
		return nil
	}
	userID, token, ok := decodeRememberCookie(cookie.Value)
	if !ok {
		return nil
	}
	user, err := m.users.GetUserByID(r.Context(), userID)
	if err != nil || user == nil {
		return nil
	}
	if !tokenMatches(user.RememberToken, token) {
		return nil
	}

	if sid, err := m.sessions.Create(r.Context(), user.ID); err == nil {
		setSessionCookie(w, sid)
	}
	return user
}

func setSessionCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
