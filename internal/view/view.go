// Package view renders the minimal HTML surface of the app: layout with
// identity-dependent header links, alert banner, feed, and forms. Plain
// html/template; the markup itself is deliberately bare.
package view

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"github.com/tkarls/microblog/internal/models"
)

const baseTitle = "Microblog"

// Data carries everything a page render can need. Flash is scoped to this
// response only; nothing here persists to the next navigation.
type Data struct {
	Title string
	User  *models.User // signed-in user, drives the header links
	Flash string       // alert banner text, empty for none

	Target   *models.User // profile / edit target
	Users    []*models.User
	Posts    []models.Micropost
	Count    int64
	Paginate bool
	Page     int
}

// FullTitle composes the window title the way the layout does.
func FullTitle(pageTitle string) string {
	if pageTitle == "" {
		return baseTitle
	}
	return baseTitle + " | " + pageTitle
}

// CountText renders the feed cardinality, singular at exactly one.
func CountText(n int64) string {
	if n == 1 {
		return "1 micropost"
	}
	return fmt.Sprintf("%d microposts", n)
}

var tmpl = template.Must(template.New("").Funcs(template.FuncMap{
	"fullTitle": FullTitle,
	"countText": CountText,
}).Parse(pages))

// Render writes the named page. Render errors after the header is out can
// only be logged.
func Render(w http.ResponseWriter, status int, name string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

const pages = `
{{define "header"}}<!DOCTYPE html>
<html>
<head><title>{{fullTitle .Title}}</title></head>
<body>
<header>
<a href="/">Home</a>
{{if .User}}<a href="/users">Users</a>
<a href="/users/{{.User.ID}}">Profile</a>
<a href="/users/{{.User.ID}}/edit">Settings</a>
<form action="/signout" method="post"><button type="submit">Sign out</button></form>
{{else}}<a href="/signin">Sign in</a>
{{end}}</header>
{{if .Flash}}<div class="alert alert-error">{{.Flash}}</div>{{end}}
{{end}}

{{define "footer"}}</body>
</html>
{{end}}

{{define "signin"}}{{template "header" .}}
<h1>Sign in</h1>
<form action="/signin" method="post">
<label>Email</label><input type="text" name="email">
<label>Password</label><input type="password" name="password">
<button type="submit">Sign in</button>
</form>
{{template "footer" .}}{{end}}

{{define "signup"}}{{template "header" .}}
<h1>Sign up</h1>
<form action="/users" method="post">
<label>Name</label><input type="text" name="name">
<label>Email</label><input type="text" name="email">
<label>Password</label><input type="password" name="password">
<button type="submit">Create my account</button>
</form>
{{template "footer" .}}{{end}}

{{define "home"}}{{template "header" .}}
{{if .User}}<h1>{{.User.Name}}</h1>
<span>{{countText .Count}}</span>
<form action="/microposts" method="post">
<textarea name="content"></textarea>
<button type="submit">Post</button>
</form>
<ol class="microposts">
{{range .Posts}}<li>{{.Content}}</li>
{{end}}</ol>
{{if .Paginate}}<div class="pagination"></div>{{end}}
{{else}}<h1>Welcome to Microblog</h1>
{{end}}{{template "footer" .}}{{end}}

{{define "edit"}}{{template "header" .}}
<h1>Update your profile</h1>
<form action="/users/{{.Target.ID}}" method="post">
<label>Name</label><input type="text" name="name" value="{{.Target.Name}}">
<label>Email</label><input type="text" name="email" value="{{.Target.Email}}">
<label>Password</label><input type="password" name="password">
<button type="submit">Save changes</button>
</form>
{{template "footer" .}}{{end}}

{{define "profile"}}{{template "header" .}}
<h1>{{.Target.Name}}</h1>
{{template "footer" .}}{{end}}

{{define "index"}}{{template "header" .}}
<h1>All users</h1>
<ul class="users">
{{range .Users}}<li><a href="/users/{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
{{template "footer" .}}{{end}}
`
