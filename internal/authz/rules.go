// Package authz holds the pure authorization decision for every guarded
// operation. Rules are an ordered list; the first match wins, and the order
// is observable (an admin deleting themselves must hit the self-deletion
// rule, not the wrong-user rule).
package authz

// Operation names a guarded inbound operation.
type Operation int

const (
	OpSignupPage Operation = iota
	OpCreateUser
	OpListUsers
	OpShowUser
	OpEditUser
	OpUpdateUser
	OpDestroyUser
	OpCreateMicropost
	OpDestroyMicropost
	OpHomeFeed
)

const (
	SignInPath = "/signin"
	RootPath   = "/"
)

// Actor is the resolved identity behind a request. A nil *Actor is an
// anonymous client.
type Actor struct {
	ID    string
	Admin bool
}

// Decision is the outcome of Authorize. On deny, RedirectTo is the response
// target; SaveLocation marks the one case where the denied destination is
// remembered for friendly forwarding.
type Decision struct {
	Allow        bool
	RedirectTo   string
	SaveLocation bool
}

var allow = Decision{Allow: true}

func denySignIn() Decision {
	return Decision{RedirectTo: SignInPath, SaveLocation: true}
}

func denyRoot() Decision {
	return Decision{RedirectTo: RootPath}
}

// requiresSignIn reports whether op is unavailable to anonymous clients.
// Signup and the home feed are public.
func requiresSignIn(op Operation) bool {
	switch op {
	case OpListUsers, OpEditUser, OpUpdateUser, OpDestroyUser,
		OpCreateMicropost, OpDestroyMicropost:
		return true
	}
	return false
}

// Authorize decides whether actor may perform op against the user identified
// by targetUserID (empty for operations without a user target). It is pure:
// it inspects nothing but its arguments.
func Authorize(op Operation, actor *Actor, targetUserID string) Decision {
	// 1. Protected operation, anonymous client: to sign-in, remembering
	// where the client was headed.
	if requiresSignIn(op) && actor == nil {
		return denySignIn()
	}

	// 2. Signed-in clients have no business on the signup flow.
	if (op == OpSignupPage || op == OpCreateUser) && actor != nil {
		return denyRoot()
	}

	// 3. Editing another user's record takes admin.
	if (op == OpEditUser || op == OpUpdateUser) && actor.ID != targetUserID && !actor.Admin {
		return denyRoot()
	}

	// 4. Nobody deletes their own account, admins included.
	if op == OpDestroyUser && targetUserID == actor.ID {
		return denyRoot()
	}

	// 5. Only admins delete other accounts.
	if op == OpDestroyUser && !actor.Admin {
		return denyRoot()
	}

	// 6. Microposts only require sign-in (rule 1). Ownership is not
	// enforced here.
	return allow
}
