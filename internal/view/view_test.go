package view

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tkarls/microblog/internal/models"
)

func TestFullTitle(t *testing.T) {
	assert.Equal(t, "Microblog", FullTitle(""))
	assert.Equal(t, "Microblog | Sign in", FullTitle("Sign in"))
}

// Exact singular/plural boundary at n=1.
func TestCountText(t *testing.T) {
	assert.Equal(t, "0 microposts", CountText(0))
	assert.Equal(t, "1 micropost", CountText(1))
	assert.Equal(t, "2 microposts", CountText(2))
	assert.Equal(t, "31 microposts", CountText(31))
}

func TestHeaderLinks_SignedIn(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, 200, "home", Data{
		User:  &models.User{ID: "u1", Name: "Example User"},
		Count: 1,
	})
	body := rec.Body.String()

	assert.Contains(t, body, `href="/users"`)
	assert.Contains(t, body, `href="/users/u1"`)
	assert.Contains(t, body, `href="/users/u1/edit"`)
	assert.NotContains(t, body, `href="/signin"`)

	// Sign out is a plain form post; a browser click must reach a served
	// route without any script support.
	assert.Contains(t, body, `<form action="/signout" method="post">`)
	assert.Contains(t, body, "Sign out")
}

func TestHeaderLinks_SignedOut(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, 200, "home", Data{})
	body := rec.Body.String()

	assert.Contains(t, body, `href="/signin"`)
	assert.NotContains(t, body, "Profile")
	assert.NotContains(t, body, "Settings")
	assert.NotContains(t, body, "Sign out")
}

func TestFlashBanner(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, 200, "signin", Data{Title: "Sign in", Flash: "Invalid email/password combination"})
	assert.Contains(t, rec.Body.String(), `<div class="alert alert-error">Invalid email/password combination</div>`)

	rec = httptest.NewRecorder()
	Render(rec, 200, "signin", Data{Title: "Sign in"})
	assert.NotContains(t, rec.Body.String(), "alert-error")
}

func TestPaginationControl(t *testing.T) {
	user := &models.User{ID: "u1", Name: "Example User"}

	rec := httptest.NewRecorder()
	Render(rec, 200, "home", Data{User: user, Count: 30})
	assert.NotContains(t, rec.Body.String(), `class="pagination"`)

	rec = httptest.NewRecorder()
	Render(rec, 200, "home", Data{User: user, Count: 31, Paginate: true})
	assert.Contains(t, rec.Body.String(), `class="pagination"`)
}

func TestPagesEscapeContent(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, 200, "home", Data{
		User:  &models.User{ID: "u1", Name: "Example User"},
		Posts: []models.Micropost{{Content: "<script>alert(1)</script>"}},
		Count: 1,
	})
	body := rec.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.True(t, strings.Contains(body, "&lt;script&gt;"))
}
