// Package user persists accounts and their quiz-generation themes.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrThemeNotFound = errors.New("user has no current theme")
)

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	CreatedAt    int64  `json:"created_at"`
}

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

func (s *SQLStore) Create(ctx context.Context, username, email, passwordHash string) (User, error) {
	u := User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash, created_at)
		 VALUES ($1,$2,$3,$4) RETURNING id`,
		u.Username, u.Email, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *SQLStore) GetByUsername(ctx context.Context, username string) (User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, created_at FROM users WHERE username=$1`, username)
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, fmt.Errorf("%w: username=%s", ErrNotFound, username)
		}
		return User{}, err
	}
	return u, nil
}

// SetTheme appends a new theme row; the newest row is the current theme.
func (s *SQLStore) SetTheme(ctx context.Context, userID int64, description string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_themes (user_id, description, created_at) VALUES ($1,$2,$3)`,
		userID, description, time.Now().Unix())
	return err
}

// CurrentTheme satisfies the quiz service's lookup contract.
func (s *SQLStore) CurrentTheme(ctx context.Context, userID int64) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT description FROM user_themes WHERE user_id=$1 ORDER BY id DESC LIMIT 1`, userID)
	var desc string
	if err := row.Scan(&desc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: user=%d", ErrThemeNotFound, userID)
		}
		return "", err
	}
	return desc, nil
}
