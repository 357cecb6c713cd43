package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	alice := &Actor{ID: "alice"}
	bob := &Actor{ID: "bob"}
	admin := &Actor{ID: "root", Admin: true}

	tests := []struct {
		name   string
		op     Operation
		actor  *Actor
		target string
		want   Decision
	}{
		{"anonymous edit page", OpEditUser, nil, "alice",
			Decision{RedirectTo: SignInPath, SaveLocation: true}},
		{"anonymous update", OpUpdateUser, nil, "alice",
			Decision{RedirectTo: SignInPath, SaveLocation: true}},
		{"anonymous users index", OpListUsers, nil, "",
			Decision{RedirectTo: SignInPath, SaveLocation: true}},
		{"anonymous micropost create", OpCreateMicropost, nil, "",
			Decision{RedirectTo: SignInPath, SaveLocation: true}},
		{"anonymous micropost destroy", OpDestroyMicropost, nil, "",
			Decision{RedirectTo: SignInPath, SaveLocation: true}},

		{"anonymous signup page", OpSignupPage, nil, "", Decision{Allow: true}},
		{"anonymous signup create", OpCreateUser, nil, "", Decision{Allow: true}},
		{"signed-in signup page", OpSignupPage, alice, "", Decision{RedirectTo: RootPath}},
		{"signed-in signup create", OpCreateUser, alice, "", Decision{RedirectTo: RootPath}},

		{"edit self", OpEditUser, alice, "alice", Decision{Allow: true}},
		{"update self", OpUpdateUser, alice, "alice", Decision{Allow: true}},
		{"edit other as non-admin", OpEditUser, bob, "alice", Decision{RedirectTo: RootPath}},
		{"update other as non-admin", OpUpdateUser, bob, "alice", Decision{RedirectTo: RootPath}},
		{"edit other as admin", OpEditUser, admin, "alice", Decision{Allow: true}},

		{"destroy self as admin", OpDestroyUser, admin, "root", Decision{RedirectTo: RootPath}},
		{"destroy self as non-admin", OpDestroyUser, alice, "alice", Decision{RedirectTo: RootPath}},
		{"destroy other as non-admin", OpDestroyUser, bob, "alice", Decision{RedirectTo: RootPath}},
		{"destroy other as admin", OpDestroyUser, admin, "alice", Decision{Allow: true}},

		{"signed-in micropost create", OpCreateMicropost, alice, "", Decision{Allow: true}},
		{"home feed anonymous", OpHomeFeed, nil, "", Decision{Allow: true}},
		{"profile anonymous", OpShowUser, nil, "alice", Decision{Allow: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.op, tt.actor, tt.target))
		})
	}
}

// An admin deleting themselves must hit the self-deletion rule before the
// admin exemption in the wrong-user rule could apply; the redirect is the
// landing page either way, but only if the order holds.
func TestAuthorize_SelfDeletionPrecedesRole(t *testing.T) {
	admin := &Actor{ID: "root", Admin: true}
	d := Authorize(OpDestroyUser, admin, "root")
	assert.False(t, d.Allow)
	assert.Equal(t, RootPath, d.RedirectTo)
	assert.False(t, d.SaveLocation, "denials past rule 1 must not save a destination")
}
