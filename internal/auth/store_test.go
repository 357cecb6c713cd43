package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/tkarls/microblog/internal/models"
)

var errNotFound = errors.New("not found")

// fakeUserStore implements UserStore in memory for tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		cp := *u
		s.users[u.ID] = &cp
	}
	return s
}

func (s *fakeUserStore) CreateUser(ctx context.Context, name, email, hashedPw string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &models.User{
		ID:       "user-" + name,
		Name:     name,
		Email:    strings.ToLower(email),
		Password: hashedPw,
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, errNotFound
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) UpdateRememberToken(ctx context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return errNotFound
	}
	u.RememberToken = token
	return nil
}

// storedToken reads the current remember token without copying semantics.
func (s *fakeUserStore) storedToken(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u.RememberToken
	}
	return ""
}
