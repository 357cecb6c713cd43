package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/tkarls/microblog/internal/models"
)

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// caller cannot tell whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email/password combination")

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateRememberToken(ctx context.Context, id, token string) error
}

// Verifier checks submitted credentials against stored user records. It has
// no session side effects.
type Verifier struct {
	users UserStore
}

func NewVerifier(users UserStore) *Verifier {
	return &Verifier{users: users}
}

// Verify returns the user for a matching email/password pair. Email is
// matched case-insensitively. bcrypt's compare is constant-time over the
// hash, which covers the timing requirement for the secret.
func (v *Verifier) Verify(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := v.users.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
