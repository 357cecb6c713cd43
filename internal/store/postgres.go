package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tkarls/microblog/internal/models"
)

// PostgresStore handles user CRUD against PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the users table if it doesn't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name           VARCHAR(50)  NOT NULL,
			email          VARCHAR(255) UNIQUE NOT NULL,
			password       VARCHAR(255) NOT NULL,
			remember_token VARCHAR(255) NOT NULL DEFAULT '',
			admin          BOOLEAN      NOT NULL DEFAULT FALSE,
			created_at     TIMESTAMPTZ  DEFAULT NOW()
		)
	`)
	return err
}

// CreateUser inserts a user. Email is stored lower-cased so the unique
// constraint is case-insensitive.
func (s *PostgresStore) CreateUser(ctx context.Context, name, email, hashedPassword string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, admin, created_at`,
		name, strings.ToLower(email), hashedPassword,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, password, remember_token, admin, created_at
		 FROM users WHERE email = $1`, strings.ToLower(email),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.RememberToken, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, email, remember_token, admin, created_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.RememberToken, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateRememberToken overwrites the stored remember token. An empty token
// invalidates every remember cookie issued before this call.
func (s *PostgresStore) UpdateRememberToken(ctx context.Context, id, token string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET remember_token = $2 WHERE id = $1`, id, token)
	return err
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id, name, email string) (*models.User, error) {
	var u models.User
	err := s.pool.QueryRow(ctx,
		`UPDATE users SET name = $2, email = $3 WHERE id = $1
		 RETURNING id, name, email, admin, created_at`,
		id, name, strings.ToLower(email),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Admin, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdatePassword(ctx context.Context, id, hashedPw string) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE users SET password = $2 WHERE id = $1`, id, hashedPw)
	return err
}

func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, admin, created_at FROM users ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Admin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
