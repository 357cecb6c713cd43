package auth

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkarls/microblog/internal/models"
)

func newTestHandler(t *testing.T, users ...*models.User) (*Handler, *fakeUserStore) {
	t.Helper()
	m, store := newTestManager(t, users...)
	return NewHandler(NewVerifier(store), m), store
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestSigninPage(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.SigninPage(rec, httptest.NewRequest(http.MethodGet, "/signin", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Microblog | Sign in</title>")
	assert.Contains(t, body, "<h1>Sign in</h1>")
}

func TestSignin_InvalidCredentials(t *testing.T) {
	h, _ := newTestHandler(t, &models.User{
		ID:       "u1",
		Email:    "user@example.com",
		Password: hashPassword(t, "foobar"),
	})

	rec := httptest.NewRecorder()
	h.Signin(rec, postForm("/signin", url.Values{
		"email":    {"user@example.com"},
		"password": {"wrong"},
	}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Microblog | Sign in</title>")
	assert.Contains(t, body, `class="alert alert-error"`)
	assert.Contains(t, body, "Invalid email/password combination")
	// The failed attempt exposes no signed-in surface and no session.
	assert.NotContains(t, body, "Profile")
	assert.NotContains(t, body, "Settings")
	assert.NotContains(t, responseCookies(rec), SessionCookie)
}

func TestSignin_ValidCredentials(t *testing.T) {
	h, store := newTestHandler(t, &models.User{
		ID:       "u1",
		Email:    "user@example.com",
		Password: hashPassword(t, "foobar"),
	})

	rec := httptest.NewRecorder()
	h.Signin(rec, postForm("/signin", url.Values{
		"email":    {"user@example.com"},
		"password": {"foobar"},
	}))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := responseCookies(rec)
	require.Contains(t, cookies, SessionCookie)
	require.Contains(t, cookies, RememberCookie)
	assert.NotEmpty(t, store.storedToken("u1"))
}

func TestSignin_ResumesForwardedDestination(t *testing.T) {
	h, _ := newTestHandler(t, &models.User{
		ID:       "u1",
		Email:    "user@example.com",
		Password: hashPassword(t, "foobar"),
	})

	req := postForm("/signin", url.Values{
		"email":    {"user@example.com"},
		"password": {"foobar"},
	})
	req.AddCookie(&http.Cookie{Name: ForwardingCookie, Value: "/users/u2/edit"})
	rec := httptest.NewRecorder()
	h.Signin(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/users/u2/edit", rec.Header().Get("Location"))

	// The slot is consumed with the sign-in.
	cookies := responseCookies(rec)
	require.Contains(t, cookies, ForwardingCookie)
	assert.Negative(t, cookies[ForwardingCookie].MaxAge)
}

func TestSignout_Handler(t *testing.T) {
	user := &models.User{ID: "u1", Email: "user@example.com"}
	h, store := newTestHandler(t, user)

	req := signedInRequest(t, h.manager, user)
	rec := httptest.NewRecorder()
	h.Signout(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Empty(t, store.storedToken("u1"))
}
